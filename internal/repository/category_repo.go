package repository

import (
	"context"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// Create creates a new category
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id string) (*domain.Category, error)

	// GetBySlug retrieves a category by slug
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// Update updates an existing category
	Update(ctx context.Context, category *domain.Category) error

	// Delete deletes a category by ID. Fails with domain.ErrCategoryInUse
	// when articles or products still reference it.
	Delete(ctx context.Context, id string) error

	// List retrieves categories, optionally filtered by type, each with its
	// attached content count
	List(ctx context.Context, categoryType domain.CategoryType) ([]*domain.Category, error)

	// SlugExists reports whether a slug is taken by a category other than excludeID
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}
