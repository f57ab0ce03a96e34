package domain

import (
	"context"
	"time"
)

// UserRole is the application-level role of a user.
type UserRole string

const (
	RoleStudent       UserRole = "student"
	RoleCouncilMember UserRole = "council_member"
	RoleCouncilAdmin  UserRole = "council_admin"
	RoleAdmin         UserRole = "admin"
)

// Valid reports whether r is a known user role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleCouncilMember, RoleCouncilAdmin, RoleAdmin:
		return true
	}
	return false
}

// Departments and years accepted at signup.
var (
	Departments = []string{"computer", "it", "electronics", "mechanical", "civil"}
	Years       = []string{"fe", "se", "te", "be"}
)

// User represents a registered student account.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Department   string    `json:"department"`
	Year         string    `json:"year"`
	Role         UserRole  `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	RollNumber   string    `json:"roll_number,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new student User. ID is set by the repository on create.
func NewUser(name, email, department, year string, createdAt, updatedAt time.Time) *User {
	return &User{
		Name:       name,
		Email:      email,
		Department: department,
		Year:       year,
		Role:       RoleStudent,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, role UserRole, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
}

// AuthService defines signup and login. Both return the user and a signed token.
type AuthService interface {
	SignUp(ctx context.Context, name, email, password, department, year string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
}

// UserService defines profile operations.
type UserService interface {
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id, phone, rollNumber, bio string) (*User, error)
}
