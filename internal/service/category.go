package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yunwei-labs/mechsite/internal/config"
	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/internal/repository"
	"github.com/yunwei-labs/mechsite/pkg/logger"
)

// CategoryService handles category-related business logic
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	content      config.ContentConfig
	logger       *logger.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository, content config.ContentConfig, log *logger.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		content:      content,
		logger:       log.WithComponent("category-service"),
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req *domain.CategoryCreateRequest, actor *domain.Actor) (*domain.Category, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	category := &domain.Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	categorySlug, err := uniqueSlug(ctx, req.Name, "", s.content.SlugRetryLimit, s.categoryRepo.SlugExists)
	if err != nil {
		return nil, err
	}
	category.Slug = categorySlug

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to store category", "category_id", category.ID, "error", err)
		return nil, err
	}

	s.logger.Info("Category created", "category_id", category.ID, "slug", category.Slug, "type", category.Type)

	return category, nil
}

// Get retrieves a category by ID
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// List retrieves categories, optionally filtered by type
func (s *CategoryService) List(ctx context.Context, categoryType domain.CategoryType) ([]*domain.Category, error) {
	if categoryType != "" && !domain.ValidCategoryType(categoryType) {
		return nil, domain.NewValidationError("type", "type must be ARTICLE or PRODUCT")
	}

	categories, err := s.categoryRepo.List(ctx, categoryType)
	if err != nil {
		s.logger.Error("Failed to list categories", "error", err)
		return nil, err
	}

	return categories, nil
}

// Update renames a category. The slug follows the name; the type is fixed
// at creation.
func (s *CategoryService) Update(ctx context.Context, id string, req *domain.CategoryUpdateRequest, actor *domain.Actor) (*domain.Category, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != category.Name {
		categorySlug, err := uniqueSlug(ctx, req.Name, category.ID, s.content.SlugRetryLimit, s.categoryRepo.SlugExists)
		if err != nil {
			return nil, err
		}
		category.Slug = categorySlug
	}

	category.Name = req.Name
	category.Description = req.Description
	category.UpdatedAt = time.Now()

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		s.logger.Error("Failed to update category", "category_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("Category updated", "category_id", id, "slug", category.Slug)

	return category, nil
}

// Delete deletes a category. Fails when content still references it.
func (s *CategoryService) Delete(ctx context.Context, id string, actor *domain.Actor) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if err != domain.ErrCategoryNotFound && err != domain.ErrCategoryInUse {
			s.logger.Error("Failed to delete category", "category_id", id, "error", err)
		}
		return err
	}

	s.logger.Info("Category deleted", "category_id", id)

	return nil
}
