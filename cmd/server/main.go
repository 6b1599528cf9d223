package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/yunwei-labs/mechsite/internal/api"
	"github.com/yunwei-labs/mechsite/internal/api/handlers"
	"github.com/yunwei-labs/mechsite/internal/auth"
	"github.com/yunwei-labs/mechsite/internal/cache"
	"github.com/yunwei-labs/mechsite/internal/config"
	"github.com/yunwei-labs/mechsite/internal/repository/sqlite"
	"github.com/yunwei-labs/mechsite/internal/search"
	"github.com/yunwei-labs/mechsite/internal/service"
	"github.com/yunwei-labs/mechsite/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting mechsite server",
		"version", "1.0.0",
		"mode", cfg.Server.Mode,
	)

	// Initialize database
	db, err := sqlite.New(
		cfg.Database.Path,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		log.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	log.Info("Database initialized", "path", cfg.Database.Path)

	// Initialize render cache
	cacheDB, err := cache.New(cfg.Cache.Path)
	if err != nil {
		log.Error("Failed to open render cache", "error", err)
		os.Exit(1)
	}
	defer cacheDB.Close()

	renderCache := cache.NewRenderCache(cacheDB, cfg.Cache.TTL)

	log.Info("Render cache opened", "path", cfg.Cache.Path, "ttl", cfg.Cache.TTL)

	// Initialize search index
	searchIndex := search.NewBleveIndex(log)
	if err := searchIndex.Open(cfg.Search.IndexPath); err != nil {
		log.Error("Failed to open search index", "error", err)
		os.Exit(1)
	}
	defer searchIndex.Close()

	count, _ := searchIndex.Count()
	log.Info("Search index opened", "path", cfg.Search.IndexPath, "document_count", count)

	// Initialize repositories
	articleRepo := sqlite.NewArticleRepo(db)
	productRepo := sqlite.NewProductRepo(db)
	categoryRepo := sqlite.NewCategoryRepo(db)
	tagRepo := sqlite.NewTagRepo(db)
	userRepo := sqlite.NewUserRepo(db)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)

	// Initialize services
	userService := service.NewUserService(userRepo, jwtManager, cfg.Auth.BcryptCost, cfg.Content, log)
	articleService := service.NewArticleService(articleRepo, categoryRepo, tagRepo, searchIndex, renderCache, cfg.Content, log)
	productService := service.NewProductService(productRepo, categoryRepo, searchIndex, renderCache, cfg.Content, log)
	categoryService := service.NewCategoryService(categoryRepo, cfg.Content, log)
	tagService := service.NewTagService(tagRepo, log)
	searchService := service.NewSearchService(searchIndex, cfg.Content, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, log)
	userHandler := handlers.NewUserHandler(userService, cfg.Content, log)
	articleHandler := handlers.NewArticleHandler(articleService, cfg.Content, log)
	productHandler := handlers.NewProductHandler(productService, cfg.Content, log)
	categoryHandler := handlers.NewCategoryHandler(categoryService, log)
	tagHandler := handlers.NewTagHandler(tagService, log)
	searchHandler := handlers.NewSearchHandler(searchService, cfg.Content, log)
	healthHandler := handlers.NewHealthHandler(db, cacheDB, searchIndex, log)

	// Initialize router
	router := api.NewRouter(
		authHandler,
		userHandler,
		articleHandler,
		productHandler,
		categoryHandler,
		tagHandler,
		searchHandler,
		healthHandler,
		jwtManager,
		cfg,
		log,
	)

	engine := router.Setup()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("HTTP server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("Server started successfully", "address", addr)

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server stopped gracefully")
}
