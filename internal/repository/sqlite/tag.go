package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

// TagRepo implements the TagRepository interface using SQLite
type TagRepo struct {
	db *DB
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *DB) *TagRepo {
	return &TagRepo{db: db}
}

// Create creates a new tag
func (r *TagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (id, name, slug, created_at) VALUES (?, ?, ?, ?)`,
		tag.ID, tag.Name, tag.Slug, tag.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// GetByID retrieves a tag by ID
func (r *TagRepo) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at FROM tags WHERE id = ?`, id,
	).Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

// List retrieves all tags ordered by name
func (r *TagRepo) List(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return tags, nil
}

// Delete deletes a tag by ID. Article links cascade.
func (r *TagRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrTagNotFound
	}
	return nil
}

// Exist reports whether every given tag ID refers to a stored tag
func (r *TagRepo) Exist(ctx context.Context, ids []string) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	var n int
	query := fmt.Sprintf(`SELECT COUNT(DISTINCT id) FROM tags WHERE id IN (%s)`,
		strings.Join(placeholders, ","))
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check tags: %w", err)
	}

	distinct := make(map[string]bool, len(ids))
	for _, id := range ids {
		distinct[id] = true
	}
	return n == len(distinct), nil
}
