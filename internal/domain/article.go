package domain

import "time"

// ArticleStatus is the visibility state of an article.
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "DRAFT"
	ArticlePublished ArticleStatus = "PUBLISHED"
)

// ValidArticleStatus reports whether s is a known article status.
func ValidArticleStatus(s ArticleStatus) bool {
	return s == ArticleDraft || s == ArticlePublished
}

// Article represents a news or technical article.
// Slug and Excerpt are derived fields: the slug is recomputed whenever the
// title changes and the excerpt whenever the content changes.
type Article struct {
	ID          string        `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Slug        string        `json:"slug" db:"slug"`
	Content     string        `json:"content" db:"content"`
	Excerpt     string        `json:"excerpt" db:"excerpt"`
	Status      ArticleStatus `json:"status" db:"status"`
	Featured    bool          `json:"featured" db:"featured"`
	AuthorID    string        `json:"authorId" db:"author_id"`
	CategoryID  string        `json:"categoryId,omitempty" db:"category_id"`
	PublishedAt *time.Time    `json:"publishedAt" db:"published_at"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`

	// Loaded relations
	Author   *AuthorRef `json:"author,omitempty"`
	Category *Category  `json:"category,omitempty"`
	Tags     []*Tag     `json:"tags,omitempty"`

	// ContentHTML is populated only when the caller asks for a rendered
	// detail view. It is never persisted.
	ContentHTML string `json:"contentHtml,omitempty"`
}

// Validate validates the article fields.
func (a *Article) Validate() error {
	if a.Title == "" {
		return NewValidationError("title", "title is required")
	}
	if len(a.Title) > 200 {
		return NewValidationError("title", "title must be at most 200 characters")
	}
	if a.Content == "" {
		return NewValidationError("content", "content is required")
	}
	if !ValidArticleStatus(a.Status) {
		return NewValidationError("status", "status must be DRAFT or PUBLISHED")
	}
	return nil
}

// ArticleCreateRequest represents a request to create an article.
type ArticleCreateRequest struct {
	Title      string        `json:"title" binding:"required,min=1,max=200"`
	Content    string        `json:"content" binding:"required,min=1"`
	CategoryID string        `json:"categoryId"`
	Tags       []string      `json:"tags"`
	Status     ArticleStatus `json:"status" binding:"omitempty,articlestatus"`
	Featured   bool          `json:"featured"`
}

// ArticleUpdateRequest represents a request to update an article.
// The payload fully replaces the mutable fields, matching the admin form.
type ArticleUpdateRequest struct {
	Title      string        `json:"title" binding:"required,min=1,max=200"`
	Content    string        `json:"content" binding:"required,min=1"`
	CategoryID string        `json:"categoryId"`
	Tags       []string      `json:"tags"`
	Status     ArticleStatus `json:"status" binding:"required,articlestatus"`
	Featured   bool          `json:"featured"`
}

// ArticleListFilter represents filters for listing articles.
// Zero values mean the condition is omitted from the query entirely.
type ArticleListFilter struct {
	Search       string
	CategorySlug string
	Status       ArticleStatus
	Page         int
	Limit        int
}
