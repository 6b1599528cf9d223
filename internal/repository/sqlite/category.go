package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

const categoryColumns = `id, name, slug, description, type, created_at, updated_at`

func scanCategory(row scanner) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Type, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CategoryRepo implements the CategoryRepository interface using SQLite
type CategoryRepo struct {
	db *DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create creates a new category
func (r *CategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.Type,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = ?`, categoryColumns)

	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// GetBySlug retrieves a category by slug
func (r *CategoryRepo) GetBySlug(ctx context.Context, slugValue string) (*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE slug = ?`, categoryColumns)

	category, err := scanCategory(r.db.QueryRowContext(ctx, query, slugValue))
	if err == sql.ErrNoRows {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// Update updates an existing category
func (r *CategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET name = ?, slug = ?, description = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		category.Name,
		category.Slug,
		category.Description,
		category.UpdatedAt,
		category.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// Delete deletes a category by ID, refusing when content still references it
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM articles WHERE category_id = ?)
		     + (SELECT COUNT(*) FROM products WHERE category_id = ?)`,
		id, id,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to count category content: %w", err)
	}
	if n > 0 {
		return domain.ErrCategoryInUse
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// List retrieves categories with per-category content counts
func (r *CategoryRepo) List(ctx context.Context, categoryType domain.CategoryType) ([]*domain.Category, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.description, c.type, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM articles a WHERE a.category_id = c.id)
		     + (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id)
		FROM categories c`
	var args []interface{}
	if categoryType != "" {
		query += ` WHERE c.type = ?`
		args = append(args, categoryType)
	}
	query += ` ORDER BY c.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Type,
			&c.CreatedAt, &c.UpdatedAt, &c.ContentCount); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// SlugExists reports whether a slug is taken by a category other than excludeID
func (r *CategoryRepo) SlugExists(ctx context.Context, slugValue, excludeID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE slug = ? AND id != ?`,
		slugValue, excludeID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return n > 0, nil
}
