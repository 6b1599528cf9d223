package service

import (
	"context"

	"github.com/yunwei-labs/mechsite/internal/config"
	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/internal/search"
	"github.com/yunwei-labs/mechsite/pkg/logger"
)

// SearchService runs site-wide full-text search over published content
type SearchService struct {
	index   search.Index
	content config.ContentConfig
	logger  *logger.Logger
}

// NewSearchService creates a new search service
func NewSearchService(index search.Index, content config.ContentConfig, log *logger.Logger) *SearchService {
	return &SearchService{
		index:   index,
		content: content,
		logger:  log.WithComponent("search-service"),
	}
}

// Search runs a full-text query. The index only holds published content,
// so no visibility filtering is needed here.
func (s *SearchService) Search(ctx context.Context, q *search.Query) (*search.Result, error) {
	if q.Text == "" {
		return nil, domain.NewValidationError("q", "query text is required")
	}
	if q.Kind != "" && q.Kind != search.KindArticle && q.Kind != search.KindProduct {
		return nil, domain.NewValidationError("kind", "kind must be article or product")
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = s.content.SearchResultsLimit
	}
	if q.Limit > s.content.MaxPageSize {
		q.Limit = s.content.MaxPageSize
	}

	result, err := s.index.Search(ctx, q)
	if err != nil {
		s.logger.Error("Search failed", "query", q.Text, "error", err)
		return nil, err
	}

	return result, nil
}

// DocumentCount reports the number of indexed documents, used by the
// health endpoint.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.Count()
}
