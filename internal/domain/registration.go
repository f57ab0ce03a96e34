package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the lifecycle status of an event registration. The
// happy path creates registrations as confirmed; the remaining values exist
// for organizer review workflows.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationRejected  RegistrationStatus = "rejected"
	RegistrationCompleted RegistrationStatus = "completed"
)

// Valid reports whether s is a known registration status.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationConfirmed, RegistrationRejected, RegistrationCompleted:
		return true
	}
	return false
}

// Certificate is the completion certificate attached to a registration.
type Certificate struct {
	Issued   bool       `json:"issued"`
	URL      string     `json:"url,omitempty"`
	IssuedAt *time.Time `json:"issued_at,omitempty"`
}

// Registration binds a user (optionally via a team) to an event. At most one
// registration may exist per (event, user) pair.
// swagger:model Registration
type Registration struct {
	ID           string             `json:"id"`
	EventID      string             `json:"event_id"`
	UserID       string             `json:"user_id"`
	TeamID       string             `json:"team_id,omitempty"`
	Status       RegistrationStatus `json:"status"`
	RegisteredAt time.Time          `json:"registered_at"`
	Result       string             `json:"result,omitempty"`
	Certificate  Certificate        `json:"certificate"`
}

// NewRegistration returns a confirmed registration for the event and user.
// teamID may be empty for solo registrations.
func NewRegistration(eventID, userID, teamID string, registeredAt time.Time) *Registration {
	return &Registration{
		EventID:      eventID,
		UserID:       userID,
		TeamID:       teamID,
		Status:       RegistrationConfirmed,
		RegisteredAt: registeredAt,
	}
}

// RegistrationWithEvent bundles a registration with its event for read-side joins.
type RegistrationWithEvent struct {
	Registration *Registration `json:"registration"`
	Event        *Event        `json:"event"`
}

// RegistrationRepository defines storage operations for registrations. The
// storage layer enforces uniqueness of (event_id, user_id); Create and
// CreateWithTeam surface ErrAlreadyRegistered on violation, which closes the
// check-then-create race between concurrent registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	// CreateWithTeam persists the team aggregate and the registration in a
	// single transaction: either both commit or neither does.
	CreateWithTeam(ctx context.Context, reg *Registration, team *Team) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Registration, error)
	ListByUserID(ctx context.Context, userID string) ([]*Registration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
}

// RegistrationService is the registration engine: it binds users to events
// under the deadline and uniqueness rules.
type RegistrationService interface {
	// RegisterForEvent registers the user for the event. When teamName is
	// non-empty a team is created with the user as leader and one pending
	// invite per member email.
	RegisterForEvent(ctx context.Context, eventID, userID, teamName string, teamMemberEmails []string) (*Registration, *Team, error)
	ListMyRegisteredEvents(ctx context.Context, userID string) ([]*RegistrationWithEvent, error)
	ListEventRegistrations(ctx context.Context, eventID string) ([]*Registration, error)
}
