package domain

import (
	"regexp"
	"time"
)

// Role controls write access to the admin surface.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ValidRole reports whether r is a known role value.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleUser
}

// emailRegex is a simple email validation pattern
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents an account in the back office.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email" binding:"required,email"`
	Name         string    `json:"name" db:"name" binding:"required,min=1,max=100"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// AuthorRef is the reduced author shape embedded in articles and products.
type AuthorRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Ref returns the embeddable author projection of the user.
func (u *User) Ref() *AuthorRef {
	return &AuthorRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Actor is the request-scoped identity threaded through services.
// A nil *Actor means the caller is unauthenticated.
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the actor carries the administrator capability.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// Validate validates the user fields.
func (u *User) Validate() error {
	if u.Email == "" {
		return NewValidationError("email", "email is required")
	}
	if !emailRegex.MatchString(u.Email) {
		return NewValidationError("email", "invalid email format")
	}
	if u.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if u.PasswordHash == "" {
		return NewValidationError("password", "password is required")
	}
	if !ValidRole(u.Role) {
		return NewValidationError("role", "role must be ADMIN or USER")
	}
	return nil
}

// UserCreateRequest represents an admin creating an account.
type UserCreateRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8"`
	Role     Role   `json:"role"`
}

// UserLoginRequest represents a login attempt.
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserListFilter represents filters for listing users.
type UserListFilter struct {
	Search string
	Role   Role
	Page   int
	Limit  int
}
