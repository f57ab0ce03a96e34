package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle status of an event.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventUpcoming, EventOngoing, EventCompleted, EventCancelled:
		return true
	}
	return false
}

// TeamSize holds the allowed team-size bounds for an event. Min <= Max.
type TeamSize struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Event represents a college event open for registration.
// swagger:model Event
type Event struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Organizer            string      `json:"organizer"`
	Description          string      `json:"description"`
	Date                 time.Time   `json:"date"`
	StartTime            string      `json:"start_time"`
	EndTime              string      `json:"end_time"`
	Location             string      `json:"location"`
	Category             string      `json:"category"`
	TeamSize             TeamSize    `json:"team_size"`
	RegistrationDeadline time.Time   `json:"registration_deadline"`
	Status               EventStatus `json:"status"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// RegistrationOpen reports whether the event still accepts registrations at now.
func (e *Event) RegistrationOpen(now time.Time) bool {
	return !now.After(e.RegistrationDeadline)
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
}

// EventService defines event catalog reads.
type EventService interface {
	ListEvents(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	GetEventByID(ctx context.Context, eventID string) (*Event, error)
}
