package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusevents/internal/domain"
)

const registrationColumns = `id, event_id, user_id, COALESCE(team_id::text, ''), status,
	registered_at, COALESCE(result, ''), certificate_issued,
	COALESCE(certificate_url, ''), certificate_issued_at`

const uniqueRegistrationConstraint = "registrations_event_id_user_id_key"

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrapTransient(err)
	}
	defer tx.Rollback()

	if err := insertRegistrationTx(ctx, tx, reg); err != nil {
		return err
	}
	return wrapTransient(tx.Commit())
}

// CreateWithTeam persists the team aggregate and the registration in one
// transaction. Either both commit or neither does; a concurrent duplicate
// registration makes the whole unit fail with ErrAlreadyRegistered and the
// team is rolled back with it.
func (r *registrationRepository) CreateWithTeam(ctx context.Context, reg *domain.Registration, team *domain.Team) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrapTransient(err)
	}
	defer tx.Rollback()

	if team != nil {
		if err := insertTeamTx(ctx, tx, team); err != nil {
			return wrapTransient(err)
		}
		reg.TeamID = team.ID
	}
	if err := insertRegistrationTx(ctx, tx, reg); err != nil {
		return err
	}
	return wrapTransient(tx.Commit())
}

func insertRegistrationTx(ctx context.Context, tx *sql.Tx, reg *domain.Registration) error {
	var teamID any
	if reg.TeamID != "" {
		teamID = reg.TeamID
	}
	err := tx.QueryRowContext(ctx, `
		INSERT INTO registrations (event_id, user_id, team_id, status, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, reg.EventID, reg.UserID, teamID, reg.Status, reg.RegisteredAt).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err, uniqueRegistrationConstraint) {
			return domain.ErrAlreadyRegistered
		}
		return wrapTransient(fmt.Errorf("insert registration: %w", err))
	}
	return nil
}

func (r *registrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 AND user_id = $2`
	return scanRegistration(r.DB.QueryRowContext(ctx, query, eventID, userID))
}

func (r *registrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE user_id = $1
		ORDER BY registered_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE event_id = $1
		ORDER BY registered_at ASC
	`
	return r.list(ctx, query, eventID)
}

func (r *registrationRepository) list(ctx context.Context, query string, arg any) ([]*domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg := &domain.Registration{}
		var issuedAt sql.NullTime
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.TeamID, &reg.Status,
			&reg.RegisteredAt, &reg.Result, &reg.Certificate.Issued,
			&reg.Certificate.URL, &issuedAt); err != nil {
			return nil, err
		}
		if issuedAt.Valid {
			reg.Certificate.IssuedAt = &issuedAt.Time
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func scanRegistration(row *sql.Row) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var issuedAt sql.NullTime
	err := row.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.TeamID, &reg.Status,
		&reg.RegisteredAt, &reg.Result, &reg.Certificate.Issued,
		&reg.Certificate.URL, &issuedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if issuedAt.Valid {
		reg.Certificate.IssuedAt = &issuedAt.Time
	}
	return reg, nil
}
