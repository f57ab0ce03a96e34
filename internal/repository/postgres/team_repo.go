package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

// querier is satisfied by both *sql.DB and *sql.Tx so aggregate loading can
// run inside or outside a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type teamRepository struct {
	DB *sql.DB
}

func NewTeamRepository(db *sql.DB) domain.TeamRepository {
	return &teamRepository{DB: db}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrapTransient(err)
	}
	defer tx.Rollback()

	if err := insertTeamTx(ctx, tx, team); err != nil {
		return wrapTransient(err)
	}
	return wrapTransient(tx.Commit())
}

// insertTeamTx persists a team aggregate (team row, members, invites) inside
// an existing transaction. Shared with the registration repository so team
// creation and registration commit as one unit.
func insertTeamTx(ctx context.Context, tx *sql.Tx, team *domain.Team) error {
	query := `
		INSERT INTO teams (name, event_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query,
		team.Name, team.EventID, team.Status, team.CreatedAt, team.UpdatedAt).
		Scan(&team.ID); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	for _, m := range team.Members {
		m.TeamID = team.ID
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO team_members (team_id, user_id, role, joined_at)
			VALUES ($1, $2, $3, $4)
		`, team.ID, m.UserID, m.Role, m.JoinedAt); err != nil {
			return fmt.Errorf("insert team member: %w", err)
		}
	}

	for _, inv := range team.Invites {
		inv.TeamID = team.ID
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO team_invites (team_id, email, status, invited_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, team.ID, inv.Email, inv.Status, inv.InvitedAt).Scan(&inv.ID); err != nil {
			return fmt.Errorf("insert team invite: %w", err)
		}
	}
	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	return loadTeam(ctx, r.DB, id)
}

func (r *teamRepository) GetByInviteID(ctx context.Context, inviteID string) (*domain.Team, error) {
	var teamID string
	err := r.DB.QueryRowContext(ctx,
		`SELECT team_id FROM team_invites WHERE id = $1`, inviteID).Scan(&teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return loadTeam(ctx, r.DB, teamID)
}

func (r *teamRepository) AddInvite(ctx context.Context, teamID, email string, invitedAt time.Time) (*domain.TeamInvite, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapTransient(err)
	}
	defer tx.Rollback()

	// Lock the team row so concurrent invite writes are serialized.
	var status domain.TeamStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM teams WHERE id = $1 FOR UPDATE`, teamID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapTransient(err)
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM team_invites
			WHERE team_id = $1 AND email = $2 AND status = 'pending'
		)
	`, teamID, email).Scan(&exists)
	if err != nil {
		return nil, wrapTransient(err)
	}
	if exists {
		return nil, domain.ErrDuplicateInvite
	}

	inv := &domain.TeamInvite{
		TeamID:    teamID,
		Email:     email,
		Status:    domain.InvitePending,
		InvitedAt: invitedAt,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO team_invites (team_id, email, status, invited_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, teamID, email, inv.Status, invitedAt).Scan(&inv.ID)
	if err != nil {
		// The partial unique index on pending invites backs the check above.
		if isUniqueViolation(err, "team_invites_pending_email_idx") {
			return nil, domain.ErrDuplicateInvite
		}
		return nil, wrapTransient(err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE teams SET updated_at = $2 WHERE id = $1`, teamID, invitedAt); err != nil {
		return nil, wrapTransient(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, wrapTransient(err)
	}
	return inv, nil
}

func (r *teamRepository) ResolveInvite(ctx context.Context, inviteID, userID, userEmail string, accept bool, now time.Time) (*domain.Team, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapTransient(err)
	}
	defer tx.Rollback()

	// Lock the owning team row; the pending check and completion check below
	// run under this lock.
	var teamID string
	var teamStatus domain.TeamStatus
	err = tx.QueryRowContext(ctx, `
		SELECT t.id, t.status
		FROM teams t
		JOIN team_invites i ON i.team_id = t.id
		WHERE i.id = $1
		FOR UPDATE OF t
	`, inviteID).Scan(&teamID, &teamStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapTransient(err)
	}

	var inviteEmail string
	var inviteStatus domain.InviteStatus
	err = tx.QueryRowContext(ctx,
		`SELECT email, status FROM team_invites WHERE id = $1`, inviteID).
		Scan(&inviteEmail, &inviteStatus)
	if err != nil {
		return nil, wrapTransient(err)
	}
	if inviteStatus != domain.InvitePending {
		return nil, domain.ErrInviteNotPending
	}
	if inviteEmail != userEmail {
		return nil, domain.ErrForbidden
	}

	newStatus := domain.InviteRejected
	if accept {
		newStatus = domain.InviteAccepted
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE team_invites SET status = $2, responded_at = $3 WHERE id = $1
	`, inviteID, newStatus, now); err != nil {
		return nil, wrapTransient(err)
	}

	if accept {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO team_members (team_id, user_id, role, joined_at)
			VALUES ($1, $2, $3, $4)
		`, teamID, userID, domain.MemberRegular, now); err != nil {
			if isUniqueViolation(err, "team_members_pkey") {
				return nil, domain.ErrAlreadyMember
			}
			return nil, wrapTransient(err)
		}
	}

	var pending int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM team_invites WHERE team_id = $1 AND status = 'pending'
	`, teamID).Scan(&pending)
	if err != nil {
		return nil, wrapTransient(err)
	}

	// forming -> complete when the last pending invite is resolved. A team
	// already complete or confirmed never regresses.
	if pending == 0 && teamStatus == domain.TeamForming {
		if _, err := tx.ExecContext(ctx,
			`UPDATE teams SET status = $2, updated_at = $3 WHERE id = $1`,
			teamID, domain.TeamComplete, now); err != nil {
			return nil, wrapTransient(err)
		}
	} else {
		if _, err := tx.ExecContext(ctx,
			`UPDATE teams SET updated_at = $2 WHERE id = $1`, teamID, now); err != nil {
			return nil, wrapTransient(err)
		}
	}

	team, err := loadTeam(ctx, tx, teamID)
	if err != nil {
		return nil, wrapTransient(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, wrapTransient(err)
	}
	return team, nil
}

func (r *teamRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Team, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.id
		FROM teams t
		JOIN team_members m ON m.team_id = t.id
		WHERE m.user_id = $1
		ORDER BY t.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load aggregates one by one; team membership lists are small.
	teams := make([]*domain.Team, 0, len(ids))
	for _, id := range ids {
		team, err := loadTeam(ctx, r.DB, id)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// loadTeam reads the full team aggregate: the team row, members joined with
// user name/email, and invites.
func loadTeam(ctx context.Context, q querier, id string) (*domain.Team, error) {
	team := &domain.Team{}
	err := q.QueryRowContext(ctx, `
		SELECT id, name, event_id, status, created_at, updated_at
		FROM teams
		WHERE id = $1
	`, id).Scan(&team.ID, &team.Name, &team.EventID, &team.Status, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	memberRows, err := q.QueryContext(ctx, `
		SELECT m.team_id, m.user_id, u.name, u.email, m.role, m.joined_at
		FROM team_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_id = $1
		ORDER BY m.joined_at ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer memberRows.Close()
	for memberRows.Next() {
		m := &domain.TeamMember{}
		if err := memberRows.Scan(&m.TeamID, &m.UserID, &m.Name, &m.Email, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		team.Members = append(team.Members, m)
	}
	if err := memberRows.Err(); err != nil {
		return nil, err
	}

	inviteRows, err := q.QueryContext(ctx, `
		SELECT id, team_id, email, status, invited_at, responded_at
		FROM team_invites
		WHERE team_id = $1
		ORDER BY invited_at ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer inviteRows.Close()
	for inviteRows.Next() {
		inv := &domain.TeamInvite{}
		var respondedAt sql.NullTime
		if err := inviteRows.Scan(&inv.ID, &inv.TeamID, &inv.Email, &inv.Status, &inv.InvitedAt, &respondedAt); err != nil {
			return nil, err
		}
		if respondedAt.Valid {
			inv.RespondedAt = &respondedAt.Time
		}
		team.Invites = append(team.Invites, inv)
	}
	return team, inviteRows.Err()
}
