package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

// articleColumns is the SELECT list shared by every article query: the
// article row, its author projection, and the (possibly absent) category.
const articleColumns = `
	a.id, a.title, a.slug, a.content, a.excerpt, a.status, a.featured,
	a.author_id, a.category_id, a.published_at, a.created_at, a.updated_at,
	u.name, u.email,
	c.id, c.name, c.slug, c.description, c.type, c.created_at, c.updated_at`

const articleJoins = `
	FROM articles a
	JOIN users u ON u.id = a.author_id
	LEFT JOIN categories c ON c.id = a.category_id`

// scanner interface for scanning rows
type scanner interface {
	Scan(dest ...any) error
}

// scanArticle scans a single joined row into an Article struct
func scanArticle(row scanner) (*domain.Article, error) {
	var (
		article    domain.Article
		author     domain.AuthorRef
		categoryID sql.NullString
		published  sql.NullTime

		catID, catName, catSlug, catDesc, catType sql.NullString
		catCreated, catUpdated                    sql.NullTime
	)

	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Slug,
		&article.Content,
		&article.Excerpt,
		&article.Status,
		&article.Featured,
		&article.AuthorID,
		&categoryID,
		&published,
		&article.CreatedAt,
		&article.UpdatedAt,
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

	author.ID = article.AuthorID
	article.Author = &author
	article.CategoryID = categoryID.String
	if published.Valid {
		t := published.Time
		article.PublishedAt = &t
	}
	if catID.Valid {
		article.Category = &domain.Category{
			ID:          catID.String,
			Name:        catName.String,
			Slug:        catSlug.String,
			Description: catDesc.String,
			Type:        domain.CategoryType(catType.String),
			CreatedAt:   catCreated.Time,
			UpdatedAt:   catUpdated.Time,
		}
	}

	return &article, nil
}

func scanArticles(rows *sql.Rows) ([]*domain.Article, error) {
	var articles []*domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}
	return articles, nil
}

// ArticleRepo implements the ArticleRepository interface using SQLite
type ArticleRepo struct {
	db *DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

// Create creates a new article and its tag links in one transaction
func (r *ArticleRepo) Create(ctx context.Context, article *domain.Article, tagIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO articles (id, title, slug, content, excerpt, status, featured, author_id, category_id, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		article.ID,
		article.Title,
		article.Slug,
		article.Content,
		article.Excerpt,
		article.Status,
		article.Featured,
		article.AuthorID,
		nullable(article.CategoryID),
		article.PublishedAt,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO article_tags (article_id, tag_id) VALUES (?, ?)`,
			article.ID, tagID,
		); err != nil {
			return fmt.Errorf("failed to link tag %s: %w", tagID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit article create: %w", err)
	}
	return nil
}

// GetByID retrieves an article by ID
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	return r.getOne(ctx, "a.id = ?", id)
}

// GetBySlug retrieves an article by slug
func (r *ArticleRepo) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return r.getOne(ctx, "a.slug = ?", slug)
}

func (r *ArticleRepo) getOne(ctx context.Context, cond string, arg any) (*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE %s`, articleColumns, articleJoins, cond)

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, domain.ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	if err := r.loadTags(ctx, []*domain.Article{article}); err != nil {
		return nil, err
	}
	return article, nil
}

// Update updates an article and replaces its tag links. Tag replacement is
// a diff-and-apply inside the same transaction: unchanged links are left
// untouched, so a crash mid-update cannot drop them.
func (r *ArticleRepo) Update(ctx context.Context, article *domain.Article, tagIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE articles
		SET title = ?, slug = ?, content = ?, excerpt = ?, status = ?, featured = ?,
		    category_id = ?, published_at = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := tx.ExecContext(ctx, query,
		article.Title,
		article.Slug,
		article.Content,
		article.Excerpt,
		article.Status,
		article.Featured,
		nullable(article.CategoryID),
		article.PublishedAt,
		article.UpdatedAt,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrArticleNotFound
	}

	if err := replaceTags(ctx, tx, article.ID, tagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit article update: %w", err)
	}
	return nil
}

// replaceTags diffs the stored tag links against the desired set and
// applies only the additions and removals.
func replaceTags(ctx context.Context, tx *sql.Tx, articleID string, tagIDs []string) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT tag_id FROM article_tags WHERE article_id = ?`, articleID)
	if err != nil {
		return fmt.Errorf("failed to read tag links: %w", err)
	}

	current := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan tag link: %w", err)
		}
		current[id] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating tag links: %w", err)
	}
	rows.Close()

	desired := make(map[string]bool, len(tagIDs))
	for _, id := range tagIDs {
		desired[id] = true
		if !current[id] {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO article_tags (article_id, tag_id) VALUES (?, ?)`,
				articleID, id,
			); err != nil {
				return fmt.Errorf("failed to add tag link %s: %w", id, err)
			}
		}
	}

	for id := range current {
		if !desired[id] {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM article_tags WHERE article_id = ? AND tag_id = ?`,
				articleID, id,
			); err != nil {
				return fmt.Errorf("failed to remove tag link %s: %w", id, err)
			}
		}
	}

	return nil
}

// Delete deletes an article by ID. Tag links cascade.
func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// List retrieves articles with pagination and filtering. The page fetch
// and the total count run concurrently and are joined before returning.
func (r *ArticleRepo) List(ctx context.Context, filter *domain.ArticleListFilter) ([]*domain.Article, int, error) {
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, "(a.title LIKE ? OR a.content LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.CategorySlug != "" {
		conditions = append(conditions, "c.slug = ?")
		args = append(args, filter.CategorySlug)
	}
	if filter.Status != "" {
		conditions = append(conditions, "a.status = ?")
		args = append(args, filter.Status)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", articleJoins, whereClause)

	offset := (filter.Page - 1) * filter.Limit
	pageQuery := fmt.Sprintf(`SELECT %s %s %s ORDER BY a.created_at DESC LIMIT ? OFFSET ?`,
		articleColumns, articleJoins, whereClause)
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
		return nil, 0, fmt.Errorf("failed to query articles: %w", err)
	}
	articles, scanErr := scanArticles(rows)
	rows.Close()

	wg.Wait()
	if scanErr != nil {
		return nil, 0, scanErr
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", countErr)
	}

	if err := r.loadTags(ctx, articles); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// SlugExists reports whether a slug is taken by an article other than excludeID
func (r *ArticleRepo) SlugExists(ctx context.Context, slugValue, excludeID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM articles WHERE slug = ? AND id != ?`,
		slugValue, excludeID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return n > 0, nil
}

// loadTags attaches tags to the given articles with a single IN query.
func (r *ArticleRepo) loadTags(ctx context.Context, articles []*domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	placeholders := make([]string, len(articles))
	args := make([]interface{}, len(articles))
	byID := make(map[string]*domain.Article, len(articles))
	for i, a := range articles {
		placeholders[i] = "?"
		args[i] = a.ID
		byID[a.ID] = a
		a.Tags = []*domain.Tag{}
	}

	query := fmt.Sprintf(`
		SELECT at.article_id, t.id, t.name, t.slug, t.created_at
		FROM article_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id IN (%s)
		ORDER BY t.name`, strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query article tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID string
		var tag domain.Tag
		if err := rows.Scan(&articleID, &tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan article tag: %w", err)
		}
		if a, ok := byID[articleID]; ok {
			a.Tags = append(a.Tags, &tag)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating article tags: %w", err)
	}
	return nil
}

// nullable maps an empty string to NULL for optional foreign keys.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
