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

// UserHandler handles account management requests
type UserHandler struct {
	userService *service.UserService
	content     config.ContentConfig
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService, content config.ContentConfig, log *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		content:     content,
		logger:      log.WithComponent("user-handler"),
	}
}

// Create handles account creation
func (h *UserHandler) Create(c *gin.Context) {
	var req domain.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), &req, middleware.GetActor(c))
	if err != nil {
		writeError(c, err, "Failed to create user")
		return
	}

	response.Created(c, user)
}

// List retrieves accounts with pagination
func (h *UserHandler) List(c *gin.Context) {
	parser := NewQueryParamParser(c)

	pagination := parser.Pagination(h.content.ArticlePageSize, h.content.MaxPageSize)
	filter := &domain.UserListFilter{
		Search: parser.String("search", ""),
		Role:   domain.Role(parser.String("role", "")),
		Page:   pagination.Page,
		Limit:  pagination.Limit,
	}

	users, total, err := h.userService.List(c.Request.Context(), filter, middleware.GetActor(c))
	if err != nil {
		writeError(c, err, "Failed to list users")
		return
	}

	response.Paginated(c, users, filter.Page, filter.Limit, total)
}
