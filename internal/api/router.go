package api

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"

	"github.com/yunwei-labs/mechsite/internal/api/handlers"
	"github.com/yunwei-labs/mechsite/internal/api/middleware"
	"github.com/yunwei-labs/mechsite/internal/auth"
	"github.com/yunwei-labs/mechsite/internal/config"
	"github.com/yunwei-labs/mechsite/internal/validator"
	"github.com/yunwei-labs/mechsite/pkg/logger"
)

// Router sets up the HTTP router with all routes and middleware
type Router struct {
	engine          *gin.Engine
	authHandler     *handlers.AuthHandler
	userHandler     *handlers.UserHandler
	articleHandler  *handlers.ArticleHandler
	productHandler  *handlers.ProductHandler
	categoryHandler *handlers.CategoryHandler
	tagHandler      *handlers.TagHandler
	searchHandler   *handlers.SearchHandler
	healthHandler   *handlers.HealthHandler
	jwtManager      *auth.JWTManager
	cfg             *config.Config
	logger          *logger.Logger
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	articleHandler *handlers.ArticleHandler,
	productHandler *handlers.ProductHandler,
	categoryHandler *handlers.CategoryHandler,
	tagHandler *handlers.TagHandler,
	searchHandler *handlers.SearchHandler,
	healthHandler *handlers.HealthHandler,
	jwtManager *auth.JWTManager,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		authHandler:     authHandler,
		userHandler:     userHandler,
		articleHandler:  articleHandler,
		productHandler:  productHandler,
		categoryHandler: categoryHandler,
		tagHandler:      tagHandler,
		searchHandler:   searchHandler,
		healthHandler:   healthHandler,
		jwtManager:      jwtManager,
		cfg:             cfg,
		logger:          log,
	}
}

// Setup configures all routes and middleware
func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.cfg.Server.Mode)

	// Teach gin's binding engine the content enum tags
	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		validator.RegisterCustom(v)
	}

	r.engine = gin.New()

	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.CORSMiddleware(r.cfg.CORS.AllowedOrigins))
	r.engine.Use(middleware.LoggerMiddleware(r.logger))

	// Health check endpoints (no rate limiting, no auth)
	r.engine.GET("/health", r.healthHandler.Health)
	r.engine.GET("/health/ready", r.healthHandler.Readiness)
	r.engine.GET("/health/live", r.healthHandler.Liveness)

	// API v1 routes (with rate limiting)
	v1 := r.engine.Group("/api/v1")
	v1.Use(middleware.RateLimitMiddleware(
		r.cfg.RateLimit.RequestsPerMinute,
		r.cfg.RateLimit.Burst,
	))

	requireAuth := middleware.AuthMiddleware(r.jwtManager)
	optionalAuth := middleware.OptionalAuthMiddleware(r.jwtManager)
	requireAdmin := middleware.RequireAdmin()
	{
		// Auth routes
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/login", r.authHandler.Login)
			authRoutes.GET("/me", requireAuth, r.authHandler.Me)
		}

		// Article routes. Reads are public with optional auth so admins
		// can see drafts; writes are admin only.
		articles := v1.Group("/articles")
		{
			articles.GET("", optionalAuth, r.articleHandler.List)
			articles.GET("/:id", optionalAuth, r.articleHandler.Get)

			articlesAdmin := articles.Group("", requireAuth, requireAdmin)
			{
				articlesAdmin.POST("", r.articleHandler.Create)
				articlesAdmin.PUT("/:id", r.articleHandler.Update)
				articlesAdmin.DELETE("/:id", r.articleHandler.Delete)
			}
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", optionalAuth, r.productHandler.List)
			products.GET("/:id", optionalAuth, r.productHandler.Get)

			productsAdmin := products.Group("", requireAuth, requireAdmin)
			{
				productsAdmin.POST("", r.productHandler.Create)
				productsAdmin.PUT("/:id", r.productHandler.Update)
				productsAdmin.DELETE("/:id", r.productHandler.Delete)
			}
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryHandler.List)

			categoriesAdmin := categories.Group("", requireAuth, requireAdmin)
			{
				categoriesAdmin.POST("", r.categoryHandler.Create)
				categoriesAdmin.PUT("/:id", r.categoryHandler.Update)
				categoriesAdmin.DELETE("/:id", r.categoryHandler.Delete)
			}
		}

		// Tag routes
		tags := v1.Group("/tags")
		{
			tags.GET("", r.tagHandler.List)

			tagsAdmin := tags.Group("", requireAuth, requireAdmin)
			{
				tagsAdmin.POST("", r.tagHandler.Create)
				tagsAdmin.DELETE("/:id", r.tagHandler.Delete)
			}
		}

		// User management routes (admin only)
		users := v1.Group("/users", requireAuth, requireAdmin)
		{
			users.GET("", r.userHandler.List)
			users.POST("", r.userHandler.Create)
		}

		// Search routes (public)
		v1.GET("/search", r.searchHandler.Search)
	}

	return r.engine
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	if r.engine == nil {
		return r.Setup()
	}
	return r.engine
}
