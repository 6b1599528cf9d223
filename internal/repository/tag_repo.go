package repository

import (
	"context"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	// Create creates a new tag
	Create(ctx context.Context, tag *domain.Tag) error

	// GetByID retrieves a tag by ID
	GetByID(ctx context.Context, id string) (*domain.Tag, error)

	// List retrieves all tags ordered by name
	List(ctx context.Context) ([]*domain.Tag, error)

	// Delete deletes a tag and its article links
	Delete(ctx context.Context, id string) error

	// Exist reports whether every given tag ID refers to a stored tag
	Exist(ctx context.Context, ids []string) (bool, error)
}
