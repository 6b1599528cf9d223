package domain

import "time"

// ProductStatus is the visibility state of a product.
type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
)

// ValidProductStatus reports whether s is a known product status.
func ValidProductStatus(s ProductStatus) bool {
	return s == ProductActive || s == ProductInactive
}

// Product represents a catalog entry. Specifications is a free-form
// key/value block rendered on the detail page; Images is an ordered list
// of image URLs. Both are stored as JSON columns.
type Product struct {
	ID             string            `json:"id" db:"id"`
	Name           string            `json:"name" db:"name"`
	Slug           string            `json:"slug" db:"slug"`
	Description    string            `json:"description" db:"description"`
	Content        string            `json:"content" db:"content"`
	Price          float64           `json:"price" db:"price"`
	Images         []string          `json:"images" db:"images"`
	Specifications map[string]string `json:"specifications,omitempty" db:"specifications"`
	Status         ProductStatus     `json:"status" db:"status"`
	Featured       bool              `json:"featured" db:"featured"`
	AuthorID       string            `json:"authorId" db:"author_id"`
	CategoryID     string            `json:"categoryId,omitempty" db:"category_id"`
	CreatedAt      time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time         `json:"updatedAt" db:"updated_at"`

	// Loaded relations
	Author   *AuthorRef `json:"author,omitempty"`
	Category *Category  `json:"category,omitempty"`

	ContentHTML string `json:"contentHtml,omitempty"`
}

// Validate validates the product fields.
func (p *Product) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if len(p.Name) > 200 {
		return NewValidationError("name", "name must be at most 200 characters")
	}
	if p.Price < 0 {
		return NewValidationError("price", "price must not be negative")
	}
	if !ValidProductStatus(p.Status) {
		return NewValidationError("status", "status must be ACTIVE or INACTIVE")
	}
	return nil
}

// ProductCreateRequest represents a request to create a product.
type ProductCreateRequest struct {
	Name           string            `json:"name" binding:"required,min=1,max=200"`
	Description    string            `json:"description"`
	Content        string            `json:"content"`
	Price          float64           `json:"price" binding:"gte=0"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
	CategoryID     string            `json:"categoryId"`
	Status         ProductStatus     `json:"status" binding:"omitempty,productstatus"`
	Featured       bool              `json:"featured"`
}

// ProductUpdateRequest represents a request to update a product.
type ProductUpdateRequest struct {
	Name           string            `json:"name" binding:"required,min=1,max=200"`
	Description    string            `json:"description"`
	Content        string            `json:"content"`
	Price          float64           `json:"price" binding:"gte=0"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
	CategoryID     string            `json:"categoryId"`
	Status         ProductStatus     `json:"status" binding:"required,productstatus"`
	Featured       bool              `json:"featured"`
}

// ProductListFilter represents filters for listing products.
type ProductListFilter struct {
	Search       string
	CategorySlug string
	Status       ProductStatus
	Page         int
	Limit        int
}
