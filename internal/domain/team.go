package domain

import (
	"context"
	"time"
)

// TeamStatus is the lifecycle status of a team.
// Transitions: forming -> complete (last pending invite resolved),
// complete -> confirmed (organizer-driven). Nothing leaves confirmed.
type TeamStatus string

const (
	TeamForming   TeamStatus = "forming"
	TeamComplete  TeamStatus = "complete"
	TeamConfirmed TeamStatus = "confirmed"
)

// Valid reports whether s is a known team status.
func (s TeamStatus) Valid() bool {
	switch s {
	case TeamForming, TeamComplete, TeamConfirmed:
		return true
	}
	return false
}

// MemberRole is the role of a user inside a team. Exactly one member per team
// holds RoleLeader.
type MemberRole string

const (
	MemberLeader  MemberRole = "leader"
	MemberRegular MemberRole = "member"
)

// InviteStatus is the lifecycle status of a team invite.
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteRejected InviteStatus = "rejected"
)

// Valid reports whether s is a known invite status.
func (s InviteStatus) Valid() bool {
	switch s {
	case InvitePending, InviteAccepted, InviteRejected:
		return true
	}
	return false
}

// TeamMember is a user's membership in a team.
type TeamMember struct {
	TeamID   string     `json:"team_id"`
	UserID   string     `json:"user_id"`
	Name     string     `json:"name,omitempty"`
	Email    string     `json:"email,omitempty"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joined_at"`
}

// TeamInvite is an email invited to join a team.
type TeamInvite struct {
	ID          string       `json:"id"`
	TeamID      string       `json:"team_id"`
	Email       string       `json:"email"`
	Status      InviteStatus `json:"status"`
	InvitedAt   time.Time    `json:"invited_at"`
	RespondedAt *time.Time   `json:"responded_at,omitempty"`
}

// Team is the aggregate of a team, its members, and its invites for one event.
// swagger:model Team
type Team struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	EventID   string        `json:"event_id"`
	Status    TeamStatus    `json:"status"`
	Members   []*TeamMember `json:"members"`
	Invites   []*TeamInvite `json:"invites"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewTeam returns a team with the creator as sole leader and one pending
// invite per email. Status is forming when invites exist, complete otherwise.
func NewTeam(name, eventID, leaderUserID string, inviteEmails []string, now time.Time) *Team {
	t := &Team{
		Name:    name,
		EventID: eventID,
		Status:  TeamComplete,
		Members: []*TeamMember{
			{UserID: leaderUserID, Role: MemberLeader, JoinedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(inviteEmails) > 0 {
		t.Status = TeamForming
		for _, email := range inviteEmails {
			t.Invites = append(t.Invites, &TeamInvite{
				Email:     email,
				Status:    InvitePending,
				InvitedAt: now,
			})
		}
	}
	return t
}

// Leader returns the team member holding the leader role, or nil.
func (t *Team) Leader() *TeamMember {
	for _, m := range t.Members {
		if m.Role == MemberLeader {
			return m
		}
	}
	return nil
}

// PendingInvites returns the invites still awaiting a response.
func (t *Team) PendingInvites() []*TeamInvite {
	var pending []*TeamInvite
	for _, inv := range t.Invites {
		if inv.Status == InvitePending {
			pending = append(pending, inv)
		}
	}
	return pending
}

// TeamRepository defines storage operations for the team aggregate. Mutating
// operations run in a single transaction that locks the team row, so
// concurrent invite and membership writes against one team are serialized.
type TeamRepository interface {
	// Create persists the team with its members and invites atomically.
	Create(ctx context.Context, team *Team) error
	// GetByID loads the team with members (joined with user name/email) and invites.
	GetByID(ctx context.Context, id string) (*Team, error)
	// GetByInviteID loads the team holding the given invite.
	GetByInviteID(ctx context.Context, inviteID string) (*Team, error)
	// AddInvite appends a pending invite. Returns ErrDuplicateInvite when a
	// pending invite for the email already exists on the team.
	AddInvite(ctx context.Context, teamID, email string, invitedAt time.Time) (*TeamInvite, error)
	// ResolveInvite marks the invite accepted or rejected on behalf of the
	// responding user, appends the member on accept, and transitions the team
	// to complete when no pending invites remain. The email check runs inside
	// the same transaction. Returns the updated team.
	ResolveInvite(ctx context.Context, inviteID, userID, userEmail string, accept bool, now time.Time) (*Team, error)
	// ListByUserID returns the teams the user is a member of.
	ListByUserID(ctx context.Context, userID string) ([]*Team, error)
}

// TeamService is the team formation engine: team creation, invites, and
// lifecycle transitions.
type TeamService interface {
	CreateTeam(ctx context.Context, eventID, leaderUserID, name string, memberEmails []string) (*Team, error)
	SendInvite(ctx context.Context, teamID, requesterUserID, email string) (*TeamInvite, error)
	RespondToInvite(ctx context.Context, inviteID, respondingUserID string, decision InviteStatus) (*Team, error)
	GetTeam(ctx context.Context, teamID string) (*Team, error)
	ListMyTeams(ctx context.Context, userID string) ([]*Team, error)
}
