package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func parserFor(t *testing.T, rawQuery string) *QueryParamParser {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return NewQueryParamParser(c)
}

func TestPaginationDefaults(t *testing.T) {
	p := parserFor(t, "")
	got := p.Pagination(10, 100)
	assert.Equal(t, PaginationParams{Page: 1, Limit: 10}, got)
}

func TestPaginationParsesValues(t *testing.T) {
	p := parserFor(t, "page=3&limit=25")
	got := p.Pagination(10, 100)
	assert.Equal(t, PaginationParams{Page: 3, Limit: 25}, got)
}

func TestPaginationCoercesMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  PaginationParams
	}{
		{"non-numeric page", "page=abc&limit=5", PaginationParams{Page: 1, Limit: 5}},
		{"non-numeric limit", "page=2&limit=xyz", PaginationParams{Page: 2, Limit: 10}},
		{"zero page", "page=0", PaginationParams{Page: 1, Limit: 10}},
		{"negative page", "page=-4", PaginationParams{Page: 1, Limit: 10}},
		{"zero limit", "limit=0", PaginationParams{Page: 1, Limit: 10}},
		{"limit above cap", "limit=5000", PaginationParams{Page: 1, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parserFor(t, tt.query)
			assert.Equal(t, tt.want, p.Pagination(10, 100))
		})
	}
}

func TestStringParam(t *testing.T) {
	p := parserFor(t, "status=PUBLISHED&search=%20cnc%20")
	assert.Equal(t, "PUBLISHED", p.String("status", ""))
	assert.Equal(t, "cnc", p.String("search", ""))
	assert.Equal(t, "fallback", p.String("missing", "fallback"))
}
