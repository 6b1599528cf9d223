package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

const productColumns = `
	p.id, p.name, p.slug, p.description, p.content, p.price, p.images,
	p.specifications, p.status, p.featured, p.author_id, p.category_id,
	p.created_at, p.updated_at,
	u.name, u.email,
	c.id, c.name, c.slug, c.description, c.type, c.created_at, c.updated_at`

const productJoins = `
	FROM products p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id`

// scanProduct scans a single joined row into a Product struct
func scanProduct(row scanner) (*domain.Product, error) {
	var (
		product    domain.Product
		author     domain.AuthorRef
		categoryID sql.NullString
		imagesJSON string
		specsJSON  string

		catID, catName, catSlug, catDesc, catType sql.NullString
		catCreated, catUpdated                    sql.NullTime
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.Content,
		&product.Price,
		&imagesJSON,
		&specsJSON,
		&product.Status,
		&product.Featured,
		&product.AuthorID,
		&categoryID,
		&product.CreatedAt,
		&product.UpdatedAt,
		&author.Name,
		&author.Email,
		&catID,
		&catName,
		&catSlug,
		&catDesc,
		&catType,
		&catCreated,
		&catUpdated,
	)
	if err != nil {
		return nil, err
	}

	if imagesJSON != "" {
		if err := json.Unmarshal([]byte(imagesJSON), &product.Images); err != nil {
			return nil, fmt.Errorf("failed to unmarshal images: %w", err)
		}
	}
	if specsJSON != "" {
		if err := json.Unmarshal([]byte(specsJSON), &product.Specifications); err != nil {
			return nil, fmt.Errorf("failed to unmarshal specifications: %w", err)
		}
	}

	author.ID = product.AuthorID
	product.Author = &author
	product.CategoryID = categoryID.String
	if catID.Valid {
		product.Category = &domain.Category{
			ID:          catID.String,
			Name:        catName.String,
			Slug:        catSlug.String,
			Description: catDesc.String,
			Type:        domain.CategoryType(catType.String),
			CreatedAt:   catCreated.Time,
			UpdatedAt:   catUpdated.Time,
		}
	}

	return &product, nil
}

func scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

// ProductRepo implements the ProductRepository interface using SQLite
type ProductRepo struct {
	db *DB
}

// NewProductRepo creates a new product repository
func NewProductRepo(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func marshalProductJSON(product *domain.Product) (images, specs string, err error) {
	imgs := product.Images
	if imgs == nil {
		imgs = []string{}
	}
	imagesBytes, err := json.Marshal(imgs)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal images: %w", err)
	}

	sp := product.Specifications
	if sp == nil {
		sp = map[string]string{}
	}
	specsBytes, err := json.Marshal(sp)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal specifications: %w", err)
	}

	return string(imagesBytes), string(specsBytes), nil
}

// Create creates a new product
func (r *ProductRepo) Create(ctx context.Context, product *domain.Product) error {
	images, specs, err := marshalProductJSON(product)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (id, name, slug, description, content, price, images, specifications, status, featured, author_id, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.Content,
		product.Price,
		images,
		specs,
		product.Status,
		product.Featured,
		product.AuthorID,
		nullable(product.CategoryID),
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by ID
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.getOne(ctx, "p.id = ?", id)
}

// GetBySlug retrieves a product by slug
func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.getOne(ctx, "p.slug = ?", slug)
}

func (r *ProductRepo) getOne(ctx context.Context, cond string, arg any) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE %s`, productColumns, productJoins, cond)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// Update updates an existing product
func (r *ProductRepo) Update(ctx context.Context, product *domain.Product) error {
	images, specs, err := marshalProductJSON(product)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET name = ?, slug = ?, description = ?, content = ?, price = ?, images = ?,
		    specifications = ?, status = ?, featured = ?, category_id = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		product.Name,
		product.Slug,
		product.Description,
		product.Content,
		product.Price,
		images,
		specs,
		product.Status,
		product.Featured,
		nullable(product.CategoryID),
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete deletes a product by ID
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List retrieves products with pagination and filtering. Page fetch and
// count run concurrently, as for articles.
func (r *ProductRepo) List(ctx context.Context, filter *domain.ProductListFilter) ([]*domain.Product, int, error) {
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, "(p.name LIKE ? OR p.description LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.CategorySlug != "" {
		conditions = append(conditions, "c.slug = ?")
		args = append(args, filter.CategorySlug)
	}
	if filter.Status != "" {
		conditions = append(conditions, "p.status = ?")
		args = append(args, filter.Status)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", productJoins, whereClause)

	offset := (filter.Page - 1) * filter.Limit
	pageQuery := fmt.Sprintf(`SELECT %s %s %s ORDER BY p.created_at DESC LIMIT ? OFFSET ?`,
		productColumns, productJoins, whereClause)
	pageArgs := append(append([]interface{}{}, args...), filter.Limit, offset)

	var (
		wg       sync.WaitGroup
		total    int
		countErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		countErr = r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	}()

	rows, err := r.db.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		wg.Wait()
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	products, scanErr := scanProducts(rows)
	rows.Close()

	wg.Wait()
	if scanErr != nil {
		return nil, 0, scanErr
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", countErr)
	}

	return products, total, nil
}

// SlugExists reports whether a slug is taken by a product other than excludeID
func (r *ProductRepo) SlugExists(ctx context.Context, slugValue, excludeID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE slug = ? AND id != ?`,
		slugValue, excludeID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return n > 0, nil
}
