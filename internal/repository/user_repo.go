package repository

import (
	"context"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves users with pagination
	List(ctx context.Context, filter *domain.UserListFilter) ([]*domain.User, int, error)
}
