package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yunwei-labs/mechsite/internal/config"
	"github.com/yunwei-labs/mechsite/internal/search"
	"github.com/yunwei-labs/mechsite/internal/service"
	"github.com/yunwei-labs/mechsite/pkg/logger"
	"github.com/yunwei-labs/mechsite/pkg/response"
)

// SearchHandler handles site-search requests
type SearchHandler struct {
	searchService *service.SearchService
	content       config.ContentConfig
	logger        *logger.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService, content config.ContentConfig, log *logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		content:       content,
		logger:        log.WithComponent("search-handler"),
	}
}

// Search runs a full-text query over published content
func (h *SearchHandler) Search(c *gin.Context) {
	parser := NewQueryParamParser(c)

	pagination := parser.Pagination(h.content.SearchResultsLimit, h.content.MaxPageSize)
	query := &search.Query{
		Text:  parser.String("q", ""),
		Kind:  parser.String("kind", ""),
		Page:  pagination.Page,
		Limit: pagination.Limit,
	}

	result, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		writeError(c, err, "Search failed")
		return
	}

	response.OK(c, result)
}
