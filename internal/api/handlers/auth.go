package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yunwei-labs/mechsite/internal/api/middleware"
	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/internal/service"
	"github.com/yunwei-labs/mechsite/pkg/logger"
	"github.com/yunwei-labs/mechsite/pkg/response"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	userService *service.UserService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *service.UserService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      log.WithComponent("auth-handler"),
	}
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err, "Failed to log in")
		return
	}

	response.OK(c, result)
}

// Me returns the authenticated user's own account
func (h *AuthHandler) Me(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.userService.Get(c.Request.Context(), actor.ID, actor)
	if err != nil {
		writeError(c, err, "Failed to retrieve account")
		return
	}

	response.OK(c, user)
}
