package domain

import "time"

// Tag labels articles. The article/tag relation is many-to-many.
type Tag struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Validate validates the tag fields.
func (t *Tag) Validate() error {
	if t.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if len(t.Name) > 50 {
		return NewValidationError("name", "name must be at most 50 characters")
	}
	return nil
}

// TagCreateRequest represents a request to create a tag.
type TagCreateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}
