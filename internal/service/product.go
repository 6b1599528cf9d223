package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yunwei-labs/mechsite/internal/cache"
	"github.com/yunwei-labs/mechsite/internal/config"
	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/internal/repository"
	"github.com/yunwei-labs/mechsite/internal/search"
	"github.com/yunwei-labs/mechsite/pkg/logger"
	"github.com/yunwei-labs/mechsite/pkg/markdown"
)

// ProductService handles product-related business logic
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	index        search.Index
	renderCache  *cache.RenderCache
	renderer     *markdown.Renderer
	content      config.ContentConfig
	logger       *logger.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	index search.Index,
	renderCache *cache.RenderCache,
	content config.ContentConfig,
	log *logger.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		index:        index,
		renderCache:  renderCache,
		renderer:     markdown.NewRenderer(),
		content:      content,
		logger:       log.WithComponent("product-service"),
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req *domain.ProductCreateRequest, actor *domain.Actor) (*domain.Product, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	status := req.Status
	if status == "" {
		status = domain.ProductActive
	}

	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Description:    req.Description,
		Content:        req.Content,
		Price:          req.Price,
		Images:         req.Images,
		Specifications: req.Specifications,
		Status:         status,
		Featured:       req.Featured,
		AuthorID:       actor.ID,
		CategoryID:     req.CategoryID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	productSlug, err := uniqueSlug(ctx, req.Name, "", s.content.SlugRetryLimit, s.productRepo.SlugExists)
	if err != nil {
		s.logger.Error("Failed to derive product slug", "name", req.Name, "error", err)
		return nil, err
	}
	product.Slug = productSlug

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to store product", "product_id", product.ID, "error", err)
		return nil, err
	}

	created, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	s.syncIndex(ctx, created)

	s.logger.Info("Product created",
		"product_id", created.ID,
		"slug", created.Slug,
		"status", created.Status,
	)

	return created, nil
}

// Get retrieves a product by ID or slug. Inactive products are only
// visible to admins.
func (s *ProductService) Get(ctx context.Context, idOrSlug string, actor *domain.Actor) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, idOrSlug)
	if errors.Is(err, domain.ErrProductNotFound) {
		product, err = s.productRepo.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}

	if product.Status != domain.ProductActive && !actor.IsAdmin() {
		return nil, domain.ErrProductNotFound
	}

	return product, nil
}

// GetRendered retrieves a product and attaches sanitized HTML rendered
// from its markdown content
func (s *ProductService) GetRendered(ctx context.Context, idOrSlug string, actor *domain.Actor) (*domain.Product, error) {
	product, err := s.Get(ctx, idOrSlug, actor)
	if err != nil {
		return nil, err
	}

	if product.Content == "" {
		return product, nil
	}

	if s.renderCache != nil {
		if html, err := s.renderCache.Get(ctx, search.KindProduct, product.ID, product.UpdatedAt); err == nil {
			product.ContentHTML = html
			return product, nil
		}
	}

	html, err := s.renderer.Render(product.Content)
	if err != nil {
		s.logger.Error("Failed to render product", "product_id", product.ID, "error", err)
		return nil, fmt.Errorf("failed to render product: %w", err)
	}
	product.ContentHTML = html

	if s.renderCache != nil {
		if err := s.renderCache.Set(ctx, search.KindProduct, product.ID, product.UpdatedAt, html); err != nil {
			s.logger.Warn("Failed to cache rendered product", "product_id", product.ID, "error", err)
		}
	}

	return product, nil
}

// List retrieves products with pagination and filtering. Non-admin callers
// only see active products.
func (s *ProductService) List(ctx context.Context, filter *domain.ProductListFilter, actor *domain.Actor) ([]*domain.Product, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = s.content.ProductPageSize
	}
	if filter.Limit > s.content.MaxPageSize {
		filter.Limit = s.content.MaxPageSize
	}

	if !actor.IsAdmin() {
		filter.Status = domain.ProductActive
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", "error", err)
		return nil, 0, err
	}

	return products, total, nil
}

// Update replaces the mutable fields of a product. The slug follows
// the name.
func (s *ProductService) Update(ctx context.Context, id string, req *domain.ProductUpdateRequest, actor *domain.Actor) (*domain.Product, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	wasActive := product.Status == domain.ProductActive

	if req.Name != product.Name {
		productSlug, err := uniqueSlug(ctx, req.Name, product.ID, s.content.SlugRetryLimit, s.productRepo.SlugExists)
		if err != nil {
			return nil, err
		}
		product.Slug = productSlug
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Content = req.Content
	product.Price = req.Price
	product.Images = req.Images
	product.Specifications = req.Specifications
	product.Status = req.Status
	product.Featured = req.Featured
	product.CategoryID = req.CategoryID
	product.UpdatedAt = time.Now()

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", "product_id", id, "error", err)
		return nil, err
	}

	updated, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.renderCache != nil {
		if err := s.renderCache.Invalidate(ctx, search.KindProduct, id); err != nil {
			s.logger.Warn("Failed to invalidate render cache", "product_id", id, "error", err)
		}
	}

	if wasActive && updated.Status != domain.ProductActive {
		s.dropFromIndex(ctx, id)
	} else {
		s.syncIndex(ctx, updated)
	}

	s.logger.Info("Product updated", "product_id", id, "slug", updated.Slug, "status", updated.Status)

	return updated, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id string, actor *domain.Actor) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", "product_id", id, "error", err)
		return err
	}

	s.dropFromIndex(ctx, id)

	if s.renderCache != nil {
		if err := s.renderCache.Invalidate(ctx, search.KindProduct, id); err != nil {
			s.logger.Warn("Failed to invalidate render cache", "product_id", id, "error", err)
		}
	}

	s.logger.Info("Product deleted", "product_id", id)

	return nil
}

// checkCategory verifies the category exists and groups products
func (s *ProductService) checkCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.Type != domain.CategoryProduct {
		return domain.NewValidationError("categoryId", "category does not accept products")
	}
	return nil
}

func (s *ProductService) syncIndex(ctx context.Context, product *domain.Product) {
	if s.index == nil {
		return
	}
	if product.Status != domain.ProductActive {
		return
	}
	if err := s.index.IndexDocument(ctx, search.ProductDocument(product)); err != nil {
		s.logger.Warn("Failed to index product", "product_id", product.ID, "error", err)
	}
}

func (s *ProductService) dropFromIndex(ctx context.Context, id string) {
	if s.index == nil {
		return
	}
	if err := s.index.DeleteDocument(ctx, search.KindProduct, id); err != nil {
		s.logger.Warn("Failed to delete product from index", "product_id", id, "error", err)
	}
}
