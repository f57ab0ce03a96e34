package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campusevents/internal/domain"
)

const eventColumns = `id, title, organizer, description, date, start_time, end_time,
	location, category, team_size_min, team_size_max, registration_deadline,
	status, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, organizer, description, date, start_time, end_time,
			location, category, team_size_min, team_size_max, registration_deadline,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Organizer, e.Description, e.Date, e.StartTime, e.EndTime,
		e.Location, e.Category, e.TeamSize.Min, e.TeamSize.Max, e.RegistrationDeadline,
		e.Status, e.CreatedAt, e.UpdatedAt).
		Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Organizer, &e.Description, &e.Date, &e.StartTime, &e.EndTime,
		&e.Location, &e.Category, &e.TeamSize.Min, &e.TeamSize.Max, &e.RegistrationDeadline,
		&e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY date ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Organizer, &e.Description, &e.Date, &e.StartTime, &e.EndTime,
			&e.Location, &e.Category, &e.TeamSize.Min, &e.TeamSize.Max, &e.RegistrationDeadline,
			&e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}
