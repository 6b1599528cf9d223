package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

func TestCategoryCreateAndList(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.CategoryService.Create(ctx, &domain.CategoryCreateRequest{
		Name: "数控机床",
		Type: domain.CategoryProduct,
	}, env.Admin)
	require.NoError(t, err)

	news, err := env.CategoryService.Create(ctx, &domain.CategoryCreateRequest{
		Name: "Company News",
		Type: domain.CategoryArticle,
	}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, "company-news", news.Slug)

	all, err := env.CategoryService.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	articlesOnly, err := env.CategoryService.List(ctx, domain.CategoryArticle)
	require.NoError(t, err)
	require.Len(t, articlesOnly, 1)
	assert.Equal(t, "company-news", articlesOnly[0].Slug)

	_, err = env.CategoryService.List(ctx, "BOGUS")
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCategoryNonAsciiNameGetsFallbackSlug(t *testing.T) {
	env := setupTestEnv(t)

	category, err := env.CategoryService.Create(context.Background(), &domain.CategoryCreateRequest{
		Name: "液压设备",
		Type: domain.CategoryProduct,
	}, env.Admin)
	require.NoError(t, err)

	// Names with no ASCII letters fall back to a deterministic hash slug
	assert.Regexp(t, `^n-[0-9a-f]{8}$`, category.Slug)
}

func TestCategoryListContentCounts(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	category := env.seedCategory(t, "Company News", "company-news", domain.CategoryArticle)

	for i := 0; i < 2; i++ {
		_, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
			Title:      "News " + string(rune('A'+i)),
			Content:    "body",
			CategoryID: category.ID,
			Status:     domain.ArticlePublished,
		}, env.Admin)
		require.NoError(t, err)
	}

	categories, err := env.CategoryService.List(ctx, domain.CategoryArticle)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, 2, categories[0].ContentCount)
}

func TestCategoryUpdate(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	category := env.seedCategory(t, "Old Name", "old-name", domain.CategoryArticle)

	updated, err := env.CategoryService.Update(ctx, category.ID, &domain.CategoryUpdateRequest{
		Name:        "New Name",
		Description: "renamed",
	}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, "new-name", updated.Slug)
	assert.Equal(t, domain.CategoryArticle, updated.Type)
}

func TestCategoryDeleteInUse(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	category := env.seedCategory(t, "Busy", "busy", domain.CategoryArticle)

	_, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title:      "Attached",
		Content:    "body",
		CategoryID: category.ID,
	}, env.Admin)
	require.NoError(t, err)

	assert.ErrorIs(t, env.CategoryService.Delete(ctx, category.ID, env.Admin), domain.ErrCategoryInUse)

	// Empty categories delete cleanly
	empty := env.seedCategory(t, "Empty", "empty", domain.CategoryArticle)
	require.NoError(t, env.CategoryService.Delete(ctx, empty.ID, env.Admin))
}

func TestTagLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tag, err := env.TagService.Create(ctx, &domain.TagCreateRequest{Name: "Automation"}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, "automation", tag.Slug)

	_, err = env.TagService.Create(ctx, &domain.TagCreateRequest{Name: "Automation"}, env.Admin)
	assert.ErrorIs(t, err, domain.ErrDuplicateSlug)

	_, err = env.TagService.Create(ctx, &domain.TagCreateRequest{Name: "Nope"}, env.Viewer)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	tags, err := env.TagService.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	// Deleting a tag detaches it from articles
	article, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title:   "Tagged",
		Content: "body",
		Tags:    []string{tag.ID},
	}, env.Admin)
	require.NoError(t, err)
	require.Len(t, article.Tags, 1)

	require.NoError(t, env.TagService.Delete(ctx, tag.ID, env.Admin))

	reloaded, err := env.ArticleService.Get(ctx, article.ID, env.Admin)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Tags)
}
