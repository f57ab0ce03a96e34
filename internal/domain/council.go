package domain

import (
	"context"
	"time"
)

// CouncilType categorizes a student council.
type CouncilType string

const (
	CouncilTechnical      CouncilType = "technical"
	CouncilCultural       CouncilType = "cultural"
	CouncilSports         CouncilType = "sports"
	CouncilCreative       CouncilType = "creative"
	CouncilAdministrative CouncilType = "administrative"
)

// Valid reports whether t is a known council type.
func (t CouncilType) Valid() bool {
	switch t {
	case CouncilTechnical, CouncilCultural, CouncilSports, CouncilCreative, CouncilAdministrative:
		return true
	}
	return false
}

// ApplicationStatus is the lifecycle status of a council application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// CouncilMember is a user's membership in a council.
type CouncilMember struct {
	CouncilID string    `json:"council_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

// CouncilApplication is a user's application to join a council.
type CouncilApplication struct {
	ID         string            `json:"id"`
	CouncilID  string            `json:"council_id"`
	UserID     string            `json:"user_id"`
	Position   string            `json:"position"`
	Message    string            `json:"message,omitempty"`
	Status     ApplicationStatus `json:"status"`
	AppliedAt  time.Time         `json:"applied_at"`
	ReviewedAt *time.Time        `json:"reviewed_at,omitempty"`
	ReviewedBy string            `json:"reviewed_by,omitempty"`
}

// Council represents a student council.
// swagger:model Council
type Council struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Acronym     string           `json:"acronym"`
	Description string           `json:"description"`
	Type        CouncilType      `json:"type"`
	YearFounded int              `json:"year_founded,omitempty"`
	Members     []*CouncilMember `json:"members,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CouncilRepository defines storage operations for councils. Apply enforces at
// most one pending application per (council, user) at the storage layer and
// returns ErrAlreadyApplied on violation.
type CouncilRepository interface {
	List(ctx context.Context, params PaginationParams) ([]*Council, int, error)
	GetByID(ctx context.Context, id string) (*Council, error)
	Apply(ctx context.Context, app *CouncilApplication) error
	ListApplicationsByUserID(ctx context.Context, userID string) ([]*CouncilApplication, error)
}

// CouncilService exposes council browsing and the application workflow.
type CouncilService interface {
	ListCouncils(ctx context.Context, params PaginationParams) ([]*Council, int, error)
	GetCouncilByID(ctx context.Context, councilID string) (*Council, error)
	Apply(ctx context.Context, councilID, userID, position, message string) (*CouncilApplication, error)
	ListMyApplications(ctx context.Context, userID string) ([]*CouncilApplication, error)
}
