package repository

import (
	"context"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

// ArticleRepository defines the interface for article persistence
type ArticleRepository interface {
	// Create creates a new article and its tag links
	Create(ctx context.Context, article *domain.Article, tagIDs []string) error

	// GetByID retrieves an article by ID, with author, category and tags loaded
	GetByID(ctx context.Context, id string) (*domain.Article, error)

	// GetBySlug retrieves an article by slug
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)

	// Update updates an existing article and replaces its tag links
	Update(ctx context.Context, article *domain.Article, tagIDs []string) error

	// Delete deletes an article by ID
	Delete(ctx context.Context, id string) error

	// List retrieves articles with pagination and filtering, returning the
	// page of rows and the total row count for the filter
	List(ctx context.Context, filter *domain.ArticleListFilter) ([]*domain.Article, int, error)

	// SlugExists reports whether a slug is taken by an article other than excludeID
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}
