package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these to stable HTTP status/code pairs.
var (
	// ErrNotFound is returned when a referenced event, team, invite, or
	// council does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller is not allowed to perform the
	// action (non-leader sending invites, responding to someone else's invite).
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when the request is structurally valid but
	// violates a business constraint (empty team name, too many members).
	ErrInvalidInput = errors.New("invalid input")

	// ErrUserNotFound is returned when a user lookup fails.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned on signup with an email already in use.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidCredentials is returned on login with a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAlreadyRegistered is returned when a registration already exists for
	// the same event and user.
	ErrAlreadyRegistered = errors.New("already registered for this event")

	// ErrDeadlinePassed is returned when registering after the event's
	// registration deadline.
	ErrDeadlinePassed = errors.New("registration deadline has passed")

	// ErrDuplicateInvite is returned when a pending invite for the same email
	// already exists on the team.
	ErrDuplicateInvite = errors.New("invite already sent to this email")

	// ErrInviteNotPending is returned when responding to an invite that was
	// already accepted or rejected.
	ErrInviteNotPending = errors.New("invite already processed")

	// ErrAlreadyMember is returned when accepting an invite for a team the
	// user already belongs to.
	ErrAlreadyMember = errors.New("already a member of this team")

	// ErrAlreadyApplied is returned when a pending council application already
	// exists for the same council and user.
	ErrAlreadyApplied = errors.New("already applied to this council")

	// ErrTransientStorage wraps storage failures (serialization conflicts,
	// deadlocks) where retrying the whole transaction may succeed. Partial
	// writes are never retried individually.
	ErrTransientStorage = errors.New("transient storage failure")
)
