package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/pkg/response"
)

// writeError maps service errors onto HTTP responses. Unmapped errors
// surface as a generic 500 with the given fallback message.
func writeError(c *gin.Context, err error, fallback string) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(c, validationErr.Message)
	case errors.Is(err, domain.ErrArticleNotFound):
		response.NotFound(c, "Article not found")
	case errors.Is(err, domain.ErrProductNotFound):
		response.NotFound(c, "Product not found")
	case errors.Is(err, domain.ErrCategoryNotFound):
		response.NotFound(c, "Category not found")
	case errors.Is(err, domain.ErrTagNotFound):
		response.NotFound(c, "Tag not found")
	case errors.Is(err, domain.ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, domain.ErrCategoryInUse):
		response.Conflict(c, "Category still has associated content")
	case errors.Is(err, domain.ErrUserAlreadyExists):
		response.Conflict(c, "A user with this email already exists")
	case errors.Is(err, domain.ErrDuplicateSlug):
		response.Conflict(c, "Slug already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidToken):
		response.Unauthorized(c, "Authentication required")
	case errors.Is(err, domain.ErrForbidden):
		response.Forbidden(c, "Admin access required")
	default:
		response.InternalServerError(c, fallback)
	}
}
