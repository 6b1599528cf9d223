package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yunwei-labs/mechsite/internal/api/middleware"
	"github.com/yunwei-labs/mechsite/internal/config"
	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/internal/service"
	"github.com/yunwei-labs/mechsite/pkg/logger"
	"github.com/yunwei-labs/mechsite/pkg/response"
)

// ArticleHandler handles article-related requests
type ArticleHandler struct {
	articleService *service.ArticleService
	content        config.ContentConfig
	logger         *logger.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articleService *service.ArticleService, content config.ContentConfig, log *logger.Logger) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		content:        content,
		logger:         log.WithComponent("article-handler"),
	}
}

// Create handles article creation
func (h *ArticleHandler) Create(c *gin.Context) {
	var req domain.ArticleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), &req, middleware.GetActor(c))
	if err != nil {
		writeError(c, err, "Failed to create article")
		return
	}

	response.Created(c, article)
}

// Get retrieves an article by ID or slug. Pass render=html to include
// sanitized rendered content.
func (h *ArticleHandler) Get(c *gin.Context) {
	idOrSlug := c.Param("id")
	actor := middleware.GetActor(c)

	var (
		article *domain.Article
		err     error
	)
	if c.Query("render") == "html" {
		article, err = h.articleService.GetRendered(c.Request.Context(), idOrSlug, actor)
	} else {
		article, err = h.articleService.Get(c.Request.Context(), idOrSlug, actor)
	}
	if err != nil {
		writeError(c, err, "Failed to retrieve article")
		return
	}

	response.OK(c, article)
}

// List retrieves articles with pagination and filtering
func (h *ArticleHandler) List(c *gin.Context) {
	parser := NewQueryParamParser(c)

	pagination := parser.Pagination(h.content.ArticlePageSize, h.content.MaxPageSize)
	filter := &domain.ArticleListFilter{
		Search:       parser.String("search", ""),
		CategorySlug: parser.String("category", ""),
		Status:       domain.ArticleStatus(parser.String("status", "")),
		Page:         pagination.Page,
		Limit:        pagination.Limit,
	}

	articles, total, err := h.articleService.List(c.Request.Context(), filter, middleware.GetActor(c))
	if err != nil {
		writeError(c, err, "Failed to list articles")
		return
	}

	response.Paginated(c, articles, filter.Page, filter.Limit, total)
}

// Update handles article updates
func (h *ArticleHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req domain.ArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), id, &req, middleware.GetActor(c))
	if err != nil {
		writeError(c, err, "Failed to update article")
		return
	}

	response.OK(c, article)
}

// Delete handles article deletion
func (h *ArticleHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.articleService.Delete(c.Request.Context(), id, middleware.GetActor(c)); err != nil {
		writeError(c, err, "Failed to delete article")
		return
	}

	response.Message(c, "Article deleted")
}
