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

// ArticleService handles article-related business logic
type ArticleService struct {
	articleRepo  repository.ArticleRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
	index        search.Index
	renderCache  *cache.RenderCache
	renderer     *markdown.Renderer
	content      config.ContentConfig
	logger       *logger.Logger
}

// NewArticleService creates a new article service
func NewArticleService(
	articleRepo repository.ArticleRepository,
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
	index search.Index,
	renderCache *cache.RenderCache,
	content config.ContentConfig,
	log *logger.Logger,
) *ArticleService {
	return &ArticleService{
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		index:        index,
		renderCache:  renderCache,
		renderer:     markdown.NewRenderer(),
		content:      content,
		logger:       log.WithComponent("article-service"),
	}
}

// Create creates a new article authored by the acting user
func (s *ArticleService) Create(ctx context.Context, req *domain.ArticleCreateRequest, actor *domain.Actor) (*domain.Article, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	status := req.Status
	if status == "" {
		status = domain.ArticleDraft
	}

	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkTags(ctx, req.Tags); err != nil {
		return nil, err
	}

	now := time.Now()
	article := &domain.Article{
		ID:         uuid.New().String(),
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    markdown.ExtractExcerpt(req.Content, s.content.ExcerptLength),
		Status:     status,
		Featured:   req.Featured,
		AuthorID:   actor.ID,
		CategoryID: req.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if status == domain.ArticlePublished {
		article.PublishedAt = &now
	}

	if err := article.Validate(); err != nil {
		return nil, err
	}

	articleSlug, err := uniqueSlug(ctx, req.Title, "", s.content.SlugRetryLimit, s.articleRepo.SlugExists)
	if err != nil {
		s.logger.Error("Failed to derive article slug", "title", req.Title, "error", err)
		return nil, err
	}
	article.Slug = articleSlug

	if err := s.articleRepo.Create(ctx, article, req.Tags); err != nil {
		s.logger.Error("Failed to store article", "article_id", article.ID, "error", err)
		return nil, err
	}

	created, err := s.articleRepo.GetByID(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	s.syncIndex(ctx, created)

	s.logger.Info("Article created",
		"article_id", created.ID,
		"slug", created.Slug,
		"status", created.Status,
	)

	return created, nil
}

// Get retrieves an article by ID or slug. Unpublished articles are only
// visible to admins; everyone else gets a not-found.
func (s *ArticleService) Get(ctx context.Context, idOrSlug string, actor *domain.Actor) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, idOrSlug)
	if errors.Is(err, domain.ErrArticleNotFound) {
		article, err = s.articleRepo.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}

	if article.Status != domain.ArticlePublished && !actor.IsAdmin() {
		return nil, domain.ErrArticleNotFound
	}

	return article, nil
}

// GetRendered retrieves an article and attaches sanitized HTML rendered
// from its markdown content, served from the render cache when possible.
func (s *ArticleService) GetRendered(ctx context.Context, idOrSlug string, actor *domain.Actor) (*domain.Article, error) {
	article, err := s.Get(ctx, idOrSlug, actor)
	if err != nil {
		return nil, err
	}

	if s.renderCache != nil {
		if html, err := s.renderCache.Get(ctx, search.KindArticle, article.ID, article.UpdatedAt); err == nil {
			article.ContentHTML = html
			return article, nil
		}
	}

	html, err := s.renderer.Render(article.Content)
	if err != nil {
		s.logger.Error("Failed to render article", "article_id", article.ID, "error", err)
		return nil, fmt.Errorf("failed to render article: %w", err)
	}
	article.ContentHTML = html

	if s.renderCache != nil {
		if err := s.renderCache.Set(ctx, search.KindArticle, article.ID, article.UpdatedAt, html); err != nil {
			s.logger.Warn("Failed to cache rendered article", "article_id", article.ID, "error", err)
		}
	}

	return article, nil
}

// List retrieves articles with pagination and filtering. Non-admin callers
// are pinned to published articles regardless of the requested status.
func (s *ArticleService) List(ctx context.Context, filter *domain.ArticleListFilter, actor *domain.Actor) ([]*domain.Article, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = s.content.ArticlePageSize
	}
	if filter.Limit > s.content.MaxPageSize {
		filter.Limit = s.content.MaxPageSize
	}

	if !actor.IsAdmin() {
		filter.Status = domain.ArticlePublished
	}

	articles, total, err := s.articleRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list articles", "error", err)
		return nil, 0, err
	}

	return articles, total, nil
}

// Update replaces the mutable fields of an article. The slug follows the
// title and the excerpt follows the content.
func (s *ArticleService) Update(ctx context.Context, id string, req *domain.ArticleUpdateRequest, actor *domain.Actor) (*domain.Article, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkTags(ctx, req.Tags); err != nil {
		return nil, err
	}

	wasPublished := article.Status == domain.ArticlePublished

	if req.Title != article.Title {
		articleSlug, err := uniqueSlug(ctx, req.Title, article.ID, s.content.SlugRetryLimit, s.articleRepo.SlugExists)
		if err != nil {
			return nil, err
		}
		article.Slug = articleSlug
	}

	article.Title = req.Title
	article.Content = req.Content
	article.Excerpt = markdown.ExtractExcerpt(req.Content, s.content.ExcerptLength)
	article.Status = req.Status
	article.Featured = req.Featured
	article.CategoryID = req.CategoryID
	article.UpdatedAt = time.Now()

	switch {
	case article.Status == domain.ArticlePublished && article.PublishedAt == nil:
		now := article.UpdatedAt
		article.PublishedAt = &now
	case article.Status == domain.ArticleDraft:
		article.PublishedAt = nil
	}

	if err := article.Validate(); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Update(ctx, article, req.Tags); err != nil {
		s.logger.Error("Failed to update article", "article_id", id, "error", err)
		return nil, err
	}

	updated, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.renderCache != nil {
		if err := s.renderCache.Invalidate(ctx, search.KindArticle, id); err != nil {
			s.logger.Warn("Failed to invalidate render cache", "article_id", id, "error", err)
		}
	}

	if wasPublished && updated.Status != domain.ArticlePublished {
		s.dropFromIndex(ctx, id)
	} else {
		s.syncIndex(ctx, updated)
	}

	s.logger.Info("Article updated", "article_id", id, "slug", updated.Slug, "status", updated.Status)

	return updated, nil
}

// Delete deletes an article
func (s *ArticleService) Delete(ctx context.Context, id string, actor *domain.Actor) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	if _, err := s.articleRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.articleRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete article", "article_id", id, "error", err)
		return err
	}

	s.dropFromIndex(ctx, id)

	if s.renderCache != nil {
		if err := s.renderCache.Invalidate(ctx, search.KindArticle, id); err != nil {
			s.logger.Warn("Failed to invalidate render cache", "article_id", id, "error", err)
		}
	}

	s.logger.Info("Article deleted", "article_id", id)

	return nil
}

// checkCategory verifies the category exists and groups articles
func (s *ArticleService) checkCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.Type != domain.CategoryArticle {
		return domain.NewValidationError("categoryId", "category does not accept articles")
	}
	return nil
}

// checkTags verifies every referenced tag exists
func (s *ArticleService) checkTags(ctx context.Context, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	ok, err := s.tagRepo.Exist(ctx, tagIDs)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrTagNotFound
	}
	return nil
}

// syncIndex keeps the search index aligned with visibility: published
// articles are indexed, everything else is absent. Index failures are
// logged, never surfaced.
func (s *ArticleService) syncIndex(ctx context.Context, article *domain.Article) {
	if s.index == nil {
		return
	}
	if article.Status != domain.ArticlePublished {
		return
	}
	if err := s.index.IndexDocument(ctx, search.ArticleDocument(article)); err != nil {
		s.logger.Warn("Failed to index article", "article_id", article.ID, "error", err)
	}
}

func (s *ArticleService) dropFromIndex(ctx context.Context, id string) {
	if s.index == nil {
		return
	}
	if err := s.index.DeleteDocument(ctx, search.KindArticle, id); err != nil {
		s.logger.Warn("Failed to delete article from index", "article_id", id, "error", err)
	}
}
