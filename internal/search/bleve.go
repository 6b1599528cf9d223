package search

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/yunwei-labs/mechsite/pkg/logger"
)

// BleveIndex implements the Index interface using Bleve
type BleveIndex struct {
	index  bleve.Index
	mu     sync.RWMutex // Protects concurrent access to the index
	logger *logger.Logger
}

// NewBleveIndex creates a new Bleve search index
func NewBleveIndex(log *logger.Logger) *BleveIndex {
	return &BleveIndex{
		logger: log.WithComponent("bleve-index"),
	}
}

// Open opens or creates the search index
func (b *BleveIndex) Open(indexPath string) error {
	indexDir := filepath.Dir(indexPath)
	if err := os.MkdirAll(indexDir, 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	var err error
	b.index, err = bleve.Open(indexPath)
	if err == nil {
		b.logger.Info("Opened existing search index", "path", indexPath)
		return nil
	}

	indexMapping := b.buildIndexMapping()
	b.index, err = bleve.New(indexPath, indexMapping)
	if err != nil {
		return fmt.Errorf("failed to create search index: %w", err)
	}

	b.logger.Info("Created new search index", "path", indexPath)
	return nil
}

// buildIndexMapping builds the index mapping for site content
func (b *BleveIndex) buildIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = "en"
	titleField.Store = true
	titleField.Index = true
	docMapping.AddFieldMappingsAt("title", titleField)

	bodyField := bleve.NewTextFieldMapping()
	bodyField.Analyzer = "en"
	bodyField.Store = false
	bodyField.Index = true
	docMapping.AddFieldMappingsAt("body", bodyField)

	excerptField := bleve.NewTextFieldMapping()
	excerptField.Store = true
	excerptField.Index = false
	docMapping.AddFieldMappingsAt("excerpt", excerptField)

	kindField := bleve.NewKeywordFieldMapping()
	kindField.Store = true
	kindField.Index = true
	docMapping.AddFieldMappingsAt("kind", kindField)

	categoryField := bleve.NewKeywordFieldMapping()
	categoryField.Store = true
	categoryField.Index = true
	docMapping.AddFieldMappingsAt("category", categoryField)

	createdField := bleve.NewDateTimeFieldMapping()
	createdField.Store = true
	createdField.Index = true
	docMapping.AddFieldMappingsAt("created_at", createdField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Close closes the search index
func (b *BleveIndex) Close() error {
	if b.index != nil {
		if err := b.index.Close(); err != nil {
			return fmt.Errorf("failed to close index: %w", err)
		}
		b.logger.Info("Closed search index")
	}
	return nil
}

// docKey namespaces document IDs by kind so article and product IDs can
// never collide in the shared index.
func docKey(kind, id string) string {
	return kind + ":" + id
}

// IndexDocument adds or overwrites a document
func (b *BleveIndex) IndexDocument(ctx context.Context, doc *Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.index.Index(docKey(doc.Kind, doc.ID), doc); err != nil {
		b.logger.Error("Failed to index document", "kind", doc.Kind, "id", doc.ID, "error", err)
		return fmt.Errorf("failed to index document: %w", err)
	}

	b.logger.Debug("Indexed document", "kind", doc.Kind, "id", doc.ID)
	return nil
}

// DeleteDocument removes a document
func (b *BleveIndex) DeleteDocument(ctx context.Context, kind, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.index.Delete(docKey(kind, id)); err != nil {
		b.logger.Error("Failed to delete document from index", "kind", kind, "id", id, "error", err)
		return fmt.Errorf("failed to delete from index: %w", err)
	}

	b.logger.Debug("Deleted document from index", "kind", kind, "id", id)
	return nil
}

// Search runs a query against the index
func (b *BleveIndex) Search(ctx context.Context, q *Query) (*Result, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	startTime := time.Now()

	searchRequest := bleve.NewSearchRequest(b.buildQuery(q))
	searchRequest.Fields = []string{"kind", "title", "excerpt"}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	searchRequest.From = (q.Page - 1) * q.Limit
	searchRequest.Size = q.Limit

	searchResults, err := b.index.Search(searchRequest)
	if err != nil {
		b.logger.Error("Search failed", "error", err)
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		h := Hit{Score: hit.Score}
		if kind, ok := hit.Fields["kind"].(string); ok {
			h.Kind = kind
			h.ID = hit.ID[len(kind)+1:]
		} else {
			h.ID = hit.ID
		}
		if title, ok := hit.Fields["title"].(string); ok {
			h.Title = title
		}
		if excerpt, ok := hit.Fields["excerpt"].(string); ok {
			h.Excerpt = excerpt
		}
		hits = append(hits, h)
	}

	result := &Result{
		Hits:      hits,
		Total:     int(searchResults.Total),
		Page:      q.Page,
		Limit:     q.Limit,
		QueryTime: time.Since(startTime).Milliseconds(),
	}

	b.logger.Debug("Search completed",
		"query", q.Text,
		"results", searchResults.Total,
		"time_ms", result.QueryTime,
	)

	return result, nil
}

// buildQuery builds a Bleve query from search parameters
func (b *BleveIndex) buildQuery(q *Query) query.Query {
	var queries []query.Query

	if q.Text != "" {
		matchQuery := bleve.NewMatchQuery(q.Text)
		queries = append(queries, matchQuery)
	}

	if q.Kind != "" {
		kindQuery := bleve.NewTermQuery(q.Kind)
		kindQuery.SetField("kind")
		queries = append(queries, kindQuery)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// Count returns the number of indexed documents
func (b *BleveIndex) Count() (uint64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.index.DocCount()
}
