package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campusevents/internal/domain"
)

const uniquePendingApplicationIndex = "council_applications_pending_idx"

type councilRepository struct {
	DB *sql.DB
}

func NewCouncilRepository(db *sql.DB) domain.CouncilRepository {
	return &councilRepository{DB: db}
}

func (r *councilRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Council, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM councils`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, acronym, description, type, COALESCE(year_founded, 0), created_at, updated_at
		FROM councils
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	councils := make([]*domain.Council, 0)
	for rows.Next() {
		c := &domain.Council{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Acronym, &c.Description, &c.Type,
			&c.YearFounded, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		councils = append(councils, c)
	}
	return councils, total, rows.Err()
}

func (r *councilRepository) GetByID(ctx context.Context, id string) (*domain.Council, error) {
	c := &domain.Council{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, acronym, description, type, COALESCE(year_founded, 0), created_at, updated_at
		FROM councils
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Acronym, &c.Description, &c.Type,
		&c.YearFounded, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.council_id, m.user_id, u.name, u.email, m.role, m.joined_at
		FROM council_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.council_id = $1
		ORDER BY m.joined_at ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		m := &domain.CouncilMember{}
		if err := rows.Scan(&m.CouncilID, &m.UserID, &m.Name, &m.Email, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		c.Members = append(c.Members, m)
	}
	return c, rows.Err()
}

func (r *councilRepository) Apply(ctx context.Context, app *domain.CouncilApplication) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO council_applications (council_id, user_id, position, message, status, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, app.CouncilID, app.UserID, app.Position, app.Message, app.Status, app.AppliedAt).
		Scan(&app.ID)
	if err != nil {
		// Partial unique index: one pending application per (council, user).
		if isUniqueViolation(err, uniquePendingApplicationIndex) {
			return domain.ErrAlreadyApplied
		}
		return wrapTransient(err)
	}
	return nil
}

func (r *councilRepository) ListApplicationsByUserID(ctx context.Context, userID string) ([]*domain.CouncilApplication, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, council_id, user_id, position, COALESCE(message, ''), status,
		       applied_at, reviewed_at, COALESCE(reviewed_by::text, '')
		FROM council_applications
		WHERE user_id = $1
		ORDER BY applied_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*domain.CouncilApplication, 0)
	for rows.Next() {
		app := &domain.CouncilApplication{}
		var reviewedAt sql.NullTime
		if err := rows.Scan(&app.ID, &app.CouncilID, &app.UserID, &app.Position, &app.Message,
			&app.Status, &app.AppliedAt, &reviewedAt, &app.ReviewedBy); err != nil {
			return nil, err
		}
		if reviewedAt.Valid {
			app.ReviewedAt = &reviewedAt.Time
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
