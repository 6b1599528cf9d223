package domain

import "time"

// CategoryType separates article categories from product categories.
type CategoryType string

const (
	CategoryArticle CategoryType = "ARTICLE"
	CategoryProduct CategoryType = "PRODUCT"
)

// ValidCategoryType reports whether t is a known category type.
func ValidCategoryType(t CategoryType) bool {
	return t == CategoryArticle || t == CategoryProduct
}

// Category groups articles or products. Its slug is the public filter key
// used by the list endpoints.
type Category struct {
	ID          string       `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Slug        string       `json:"slug" db:"slug"`
	Description string       `json:"description,omitempty" db:"description"`
	Type        CategoryType `json:"type" db:"type"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`

	// ContentCount is the number of articles or products attached to the
	// category, populated only by list queries.
	ContentCount int `json:"contentCount,omitempty"`
}

// Validate validates the category fields.
func (c *Category) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if !ValidCategoryType(c.Type) {
		return NewValidationError("type", "type must be ARTICLE or PRODUCT")
	}
	return nil
}

// CategoryCreateRequest represents a request to create a category.
type CategoryCreateRequest struct {
	Name        string       `json:"name" binding:"required,min=1,max=100"`
	Description string       `json:"description"`
	Type        CategoryType `json:"type" binding:"required,categorytype"`
}

// CategoryUpdateRequest represents a request to update a category.
type CategoryUpdateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}
