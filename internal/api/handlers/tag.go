package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yunwei-labs/mechsite/internal/api/middleware"
	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/internal/service"
	"github.com/yunwei-labs/mechsite/pkg/logger"
	"github.com/yunwei-labs/mechsite/pkg/response"
)

// TagHandler handles tag-related requests
type TagHandler struct {
	tagService *service.TagService
	logger     *logger.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService *service.TagService, log *logger.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     log.WithComponent("tag-handler"),
	}
}

// Create handles tag creation
func (h *TagHandler) Create(c *gin.Context) {
	var req domain.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), &req, middleware.GetActor(c))
	if err != nil {
		writeError(c, err, "Failed to create tag")
		return
	}

	response.Created(c, tag)
}

// List retrieves all tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to list tags")
		return
	}

	response.OK(c, tags)
}

// Delete handles tag deletion
func (h *TagHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.tagService.Delete(c.Request.Context(), id, middleware.GetActor(c)); err != nil {
		writeError(c, err, "Failed to delete tag")
		return
	}

	response.Message(c, "Tag deleted")
}
