package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yunwei-labs/mechsite/internal/api/middleware"
	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/internal/service"
	"github.com/yunwei-labs/mechsite/pkg/logger"
	"github.com/yunwei-labs/mechsite/pkg/response"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService *service.CategoryService
	logger          *logger.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          log.WithComponent("category-handler"),
	}
}

// Create handles category creation
func (h *CategoryHandler) Create(c *gin.Context) {
	var req domain.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req, middleware.GetActor(c))
	if err != nil {
		writeError(c, err, "Failed to create category")
		return
	}

	response.Created(c, category)
}

// List retrieves categories, optionally filtered by type
func (h *CategoryHandler) List(c *gin.Context) {
	categoryType := domain.CategoryType(NewQueryParamParser(c).String("type", ""))

	categories, err := h.categoryService.List(c.Request.Context(), categoryType)
	if err != nil {
		writeError(c, err, "Failed to list categories")
		return
	}

	response.OK(c, categories)
}

// Update handles category updates
func (h *CategoryHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req domain.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &req, middleware.GetActor(c))
	if err != nil {
		writeError(c, err, "Failed to update category")
		return
	}

	response.OK(c, category)
}

// Delete handles category deletion
func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.categoryService.Delete(c.Request.Context(), id, middleware.GetActor(c)); err != nil {
		writeError(c, err, "Failed to delete category")
		return
	}

	response.Message(c, "Category deleted")
}
