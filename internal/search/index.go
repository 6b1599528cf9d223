package search

import (
	"context"
	"time"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

// Document kinds stored in the index.
const (
	KindArticle = "article"
	KindProduct = "product"
)

// Document represents an entry in the site-search index. Only publicly
// visible content is indexed: services index on publish and delete on
// unpublish, so the index never needs a visibility filter at query time.
type Document struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Excerpt   string    `json:"excerpt"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Query represents a site-search query
type Query struct {
	Text  string
	Kind  string // optional: "article" or "product"
	Page  int
	Limit int
}

// Hit is a single search match.
type Hit struct {
	ID      string  `json:"id"`
	Kind    string  `json:"kind"`
	Title   string  `json:"title"`
	Excerpt string  `json:"excerpt"`
	Score   float64 `json:"score"`
}

// Result represents a page of search hits
type Result struct {
	Hits      []Hit `json:"hits"`
	Total     int   `json:"total"`
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	QueryTime int64 `json:"queryTimeMs"`
}

// Index defines the interface for the site-search index
type Index interface {
	// Open opens or creates the index at the given path
	Open(indexPath string) error

	// Close closes the index
	Close() error

	// IndexDocument adds or overwrites a document
	IndexDocument(ctx context.Context, doc *Document) error

	// DeleteDocument removes a document
	DeleteDocument(ctx context.Context, kind, id string) error

	// Search runs a query against the index
	Search(ctx context.Context, q *Query) (*Result, error)

	// Count returns the number of indexed documents
	Count() (uint64, error)
}

// ArticleDocument converts an article to its search document.
func ArticleDocument(a *domain.Article) *Document {
	doc := &Document{
		ID:        a.ID,
		Kind:      KindArticle,
		Title:     a.Title,
		Body:      a.Content,
		Excerpt:   a.Excerpt,
		CreatedAt: a.CreatedAt,
	}
	if a.Category != nil {
		doc.Category = a.Category.Slug
	}
	return doc
}

// ProductDocument converts a product to its search document.
func ProductDocument(p *domain.Product) *Document {
	doc := &Document{
		ID:        p.ID,
		Kind:      KindProduct,
		Title:     p.Name,
		Body:      p.Description + "\n" + p.Content,
		Excerpt:   p.Description,
		CreatedAt: p.CreatedAt,
	}
	if p.Category != nil {
		doc.Category = p.Category.Slug
	}
	return doc
}
