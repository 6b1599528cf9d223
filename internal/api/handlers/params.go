package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// PaginationParams holds parsed pagination parameters
type PaginationParams struct {
	Page  int
	Limit int
}

// QueryParamParser provides helpers for parsing query parameters.
// Malformed pagination values coerce to defaults rather than failing the
// request, so a hand-edited URL still renders a sensible first page.
type QueryParamParser struct {
	c *gin.Context
}

// NewQueryParamParser creates a new query parameter parser
func NewQueryParamParser(c *gin.Context) *QueryParamParser {
	return &QueryParamParser{c: c}
}

// Pagination parses pagination parameters with bounds enforcement
func (p *QueryParamParser) Pagination(defaultLimit, maxLimit int) PaginationParams {
	page := 1
	limit := defaultLimit

	if pageStr := p.c.Query("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil {
			page = parsed
		}
	}

	if limitStr := p.c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return PaginationParams{Page: page, Limit: limit}
}

// String gets a string parameter with optional default
func (p *QueryParamParser) String(key, defaultValue string) string {
	value := p.c.Query(key)
	if value == "" {
		return defaultValue
	}
	return strings.TrimSpace(value)
}
