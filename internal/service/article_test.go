package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

func TestArticleCreate(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	category := env.seedCategory(t, "Company News", "company-news", domain.CategoryArticle)
	tag := env.seedTag(t, "Automation", "automation")

	req := &domain.ArticleCreateRequest{
		Title:      "New Production Line Launched",
		Content:    "# Launch\n\nWe **opened** a new line.",
		CategoryID: category.ID,
		Tags:       []string{tag.ID},
		Status:     domain.ArticlePublished,
	}

	article, err := env.ArticleService.Create(ctx, req, env.Admin)
	require.NoError(t, err)

	assert.Equal(t, "new-production-line-launched", article.Slug)
	assert.Equal(t, "Launch\n\nWe opened a new line.", article.Excerpt)
	assert.Equal(t, domain.ArticlePublished, article.Status)
	require.NotNil(t, article.PublishedAt)
	require.NotNil(t, article.Author)
	assert.Equal(t, env.Admin.ID, article.Author.ID)
	require.NotNil(t, article.Category)
	assert.Equal(t, "company-news", article.Category.Slug)
	require.Len(t, article.Tags, 1)
	assert.Equal(t, "automation", article.Tags[0].Slug)
}

func TestArticleCreateDefaultsToDraft(t *testing.T) {
	env := setupTestEnv(t)

	article, err := env.ArticleService.Create(context.Background(), &domain.ArticleCreateRequest{
		Title:   "Work in Progress",
		Content: "draft body",
	}, env.Admin)
	require.NoError(t, err)

	assert.Equal(t, domain.ArticleDraft, article.Status)
	assert.Nil(t, article.PublishedAt)
}

func TestArticleCreateForbiddenForNonAdmin(t *testing.T) {
	env := setupTestEnv(t)

	req := &domain.ArticleCreateRequest{Title: "Nope", Content: "body"}

	_, err := env.ArticleService.Create(context.Background(), req, env.Viewer)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.ArticleService.Create(context.Background(), req, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestArticleSlugDisambiguation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	first, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title: "Quarterly Report", Content: "q1",
	}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, "quarterly-report", first.Slug)

	second, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title: "Quarterly Report", Content: "q2",
	}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, "quarterly-report-2", second.Slug)

	third, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title: "Quarterly Report", Content: "q3",
	}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, "quarterly-report-3", third.Slug)
}

func TestArticleGetVisibility(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	draft, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title: "Hidden Draft", Content: "secret",
	}, env.Admin)
	require.NoError(t, err)

	// Admin sees the draft by ID and slug
	got, err := env.ArticleService.Get(ctx, draft.ID, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	got, err = env.ArticleService.Get(ctx, draft.Slug, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	// Anonymous and non-admin callers get a not-found
	_, err = env.ArticleService.Get(ctx, draft.ID, nil)
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)

	_, err = env.ArticleService.Get(ctx, draft.Slug, env.Viewer)
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)
}

func TestArticleUpdateRecomputesDerivedFields(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	article, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title:   "Original Title",
		Content: "original content",
		Status:  domain.ArticlePublished,
	}, env.Admin)
	require.NoError(t, err)
	firstPublished := article.PublishedAt
	require.NotNil(t, firstPublished)

	updated, err := env.ArticleService.Update(ctx, article.ID, &domain.ArticleUpdateRequest{
		Title:   "Revised Title",
		Content: "## Heading\n\nrevised *content*",
		Status:  domain.ArticlePublished,
	}, env.Admin)
	require.NoError(t, err)

	assert.Equal(t, "revised-title", updated.Slug)
	assert.Equal(t, "Heading\n\nrevised content", updated.Excerpt)
	// Already-published articles keep their original publication time
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, firstPublished.Unix(), updated.PublishedAt.Unix())

	// Unpublishing clears the publication time
	unpublished, err := env.ArticleService.Update(ctx, article.ID, &domain.ArticleUpdateRequest{
		Title:   "Revised Title",
		Content: "revised content",
		Status:  domain.ArticleDraft,
	}, env.Admin)
	require.NoError(t, err)
	assert.Nil(t, unpublished.PublishedAt)
}

func TestArticleUpdateReplacesTags(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tagA := env.seedTag(t, "Alpha", "alpha")
	tagB := env.seedTag(t, "Beta", "beta")
	tagC := env.seedTag(t, "Gamma", "gamma")

	article, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title:   "Tagged",
		Content: "body",
		Tags:    []string{tagA.ID, tagB.ID},
	}, env.Admin)
	require.NoError(t, err)
	require.Len(t, article.Tags, 2)

	updated, err := env.ArticleService.Update(ctx, article.ID, &domain.ArticleUpdateRequest{
		Title:   "Tagged",
		Content: "body",
		Status:  domain.ArticleDraft,
		Tags:    []string{tagB.ID, tagC.ID},
	}, env.Admin)
	require.NoError(t, err)

	require.Len(t, updated.Tags, 2)
	slugs := []string{updated.Tags[0].Slug, updated.Tags[1].Slug}
	assert.ElementsMatch(t, []string{"beta", "gamma"}, slugs)
}

func TestArticleUpdateRejectsUnknownTag(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	article, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title: "No Tags", Content: "body",
	}, env.Admin)
	require.NoError(t, err)

	_, err = env.ArticleService.Update(ctx, article.ID, &domain.ArticleUpdateRequest{
		Title:   "No Tags",
		Content: "body",
		Status:  domain.ArticleDraft,
		Tags:    []string{"does-not-exist"},
	}, env.Admin)
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}

func TestArticleCreateRejectsProductCategory(t *testing.T) {
	env := setupTestEnv(t)

	category := env.seedCategory(t, "CNC Machines", "cnc-machines", domain.CategoryProduct)

	_, err := env.ArticleService.Create(context.Background(), &domain.ArticleCreateRequest{
		Title:      "Wrong Shelf",
		Content:    "body",
		CategoryID: category.ID,
	}, env.Admin)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "categoryId", validationErr.Field)
}

func TestArticleListVisibilityAndPagination(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
			Title:   "Published " + string(rune('A'+i)),
			Content: "body",
			Status:  domain.ArticlePublished,
		}, env.Admin)
		require.NoError(t, err)
	}
	_, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title: "Draft Only", Content: "body",
	}, env.Admin)
	require.NoError(t, err)

	// Anonymous callers only see published articles
	articles, total, err := env.ArticleService.List(ctx, &domain.ArticleListFilter{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, articles, 3)

	// A non-admin asking for drafts still gets published only
	_, total, err = env.ArticleService.List(ctx, &domain.ArticleListFilter{
		Status: domain.ArticleDraft,
	}, env.Viewer)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	// Admin with no status filter sees everything
	_, total, err = env.ArticleService.List(ctx, &domain.ArticleListFilter{}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	// Pagination slices but total stays the full count
	page, total, err := env.ArticleService.List(ctx, &domain.ArticleListFilter{
		Page: 2, Limit: 2,
	}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, page, 2)
}

func TestArticleListFilters(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	news := env.seedCategory(t, "Company News", "company-news", domain.CategoryArticle)

	_, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title:      "Factory Expansion",
		Content:    "hydraulic presses arriving",
		CategoryID: news.ID,
		Status:     domain.ArticlePublished,
	}, env.Admin)
	require.NoError(t, err)

	_, err = env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title:   "Unrelated Note",
		Content: "nothing here",
		Status:  domain.ArticlePublished,
	}, env.Admin)
	require.NoError(t, err)

	// Search matches title or content
	_, total, err := env.ArticleService.List(ctx, &domain.ArticleListFilter{Search: "hydraulic"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, total, err = env.ArticleService.List(ctx, &domain.ArticleListFilter{Search: "Expansion"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// Category filters by slug
	_, total, err = env.ArticleService.List(ctx, &domain.ArticleListFilter{CategorySlug: "company-news"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, total, err = env.ArticleService.List(ctx, &domain.ArticleListFilter{CategorySlug: "missing"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestArticleDelete(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	article, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title: "Short Lived", Content: "body",
	}, env.Admin)
	require.NoError(t, err)

	require.ErrorIs(t, env.ArticleService.Delete(ctx, article.ID, env.Viewer), domain.ErrForbidden)

	require.NoError(t, env.ArticleService.Delete(ctx, article.ID, env.Admin))

	_, err = env.ArticleService.Get(ctx, article.ID, env.Admin)
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)

	assert.ErrorIs(t, env.ArticleService.Delete(ctx, article.ID, env.Admin), domain.ErrArticleNotFound)
}

func TestArticleGetRendered(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	article, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title:   "Rendered",
		Content: "# Heading\n\nSome **bold** text. <script>alert(1)</script>",
		Status:  domain.ArticlePublished,
	}, env.Admin)
	require.NoError(t, err)

	rendered, err := env.ArticleService.GetRendered(ctx, article.ID, nil)
	require.NoError(t, err)

	assert.Contains(t, rendered.ContentHTML, "<h1")
	assert.Contains(t, rendered.ContentHTML, "<strong>bold</strong>")
	assert.NotContains(t, rendered.ContentHTML, "<script>")
}
