package handlers

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/yunwei-labs/mechsite/internal/cache"
	"github.com/yunwei-labs/mechsite/internal/repository/sqlite"
	"github.com/yunwei-labs/mechsite/internal/search"
	"github.com/yunwei-labs/mechsite/pkg/logger"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db          *sqlite.DB
	cacheDB     *cache.DB
	searchIndex search.Index
	logger      *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *sqlite.DB, cacheDB *cache.DB, searchIndex search.Index, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		cacheDB:     cacheDB,
		searchIndex: searchIndex,
		logger:      log.WithComponent("health-handler"),
	}
}

// Health returns basic health status
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
	})
}

// Readiness checks if the service is ready to handle requests
func (h *HealthHandler) Readiness(c *gin.Context) {
	var (
		dbHealthy     bool
		cacheHealthy  bool
		searchHealthy bool
		searchCount   uint64
		wg            sync.WaitGroup
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		dbHealthy = h.db.HealthCheck() == nil
	}()

	go func() {
		defer wg.Done()
		cacheHealthy = h.cacheDB.HealthCheck() == nil
	}()

	go func() {
		defer wg.Done()
		var err error
		searchCount, err = h.searchIndex.Count()
		searchHealthy = err == nil
	}()

	wg.Wait()

	checks := map[string]interface{}{
		"database": map[string]interface{}{
			"healthy":  dbHealthy,
			"required": true,
		},
		"render_cache": map[string]interface{}{
			"healthy":  cacheHealthy,
			"required": false,
			"note":     "Optional - rendered pages fall back to on-demand rendering",
		},
		"search": map[string]interface{}{
			"healthy":        searchHealthy,
			"required":       true,
			"document_count": searchCount,
		},
	}

	// Only required services gate readiness
	ready := dbHealthy && searchHealthy

	status := "ready"
	code := 200
	if !ready {
		status = "not ready"
		code = 503
	}

	c.JSON(code, gin.H{
		"status": status,
		"checks": checks,
	})
}

// Liveness checks if the service is alive
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "alive",
	})
}
