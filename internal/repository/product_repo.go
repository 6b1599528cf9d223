package repository

import (
	"context"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID, with author and category loaded
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// GetBySlug retrieves a product by slug
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// Update updates an existing product
	Update(ctx context.Context, product *domain.Product) error

	// Delete deletes a product by ID
	Delete(ctx context.Context, id string) error

	// List retrieves products with pagination and filtering
	List(ctx context.Context, filter *domain.ProductListFilter) ([]*domain.Product, int, error)

	// SlugExists reports whether a slug is taken by a product other than excludeID
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}
