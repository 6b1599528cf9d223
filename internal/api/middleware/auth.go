package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yunwei-labs/mechsite/internal/auth"
	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/pkg/response"
)

const actorKey = "actor"

// AuthMiddleware creates JWT authentication middleware. Requests without a
// valid bearer token are rejected.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromHeader(c, jwtManager)
		if !ok {
			c.Abort()
			return
		}
		if actor == nil {
			response.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the actor when a bearer token is present
// but lets anonymous requests through. Listing endpoints use it to widen
// visibility for admins.
func OptionalAuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromHeader(c, jwtManager)
		if !ok {
			c.Abort()
			return
		}
		if actor != nil {
			c.Set(actorKey, actor)
		}
		c.Next()
	}
}

// RequireAdmin rejects authenticated non-admin actors. Must run after
// AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetActor(c).IsAdmin() {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// actorFromHeader parses the Authorization header. It returns (nil, true)
// when no header is present and (nil, false) after writing an error
// response for a malformed or invalid token.
func actorFromHeader(c *gin.Context, jwtManager *auth.JWTManager) (*domain.Actor, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, true
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Unauthorized(c, "Invalid authorization header format")
		return nil, false
	}

	claims, err := jwtManager.Validate(parts[1])
	if err != nil {
		response.Unauthorized(c, "Invalid or expired token")
		return nil, false
	}

	return claims.Actor(), true
}

// GetActor retrieves the authenticated actor from the request context.
// Returns nil for anonymous requests.
func GetActor(c *gin.Context) *domain.Actor {
	v, exists := c.Get(actorKey)
	if !exists {
		return nil
	}
	actor, _ := v.(*domain.Actor)
	return actor
}
