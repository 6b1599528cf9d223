package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

func TestProductCreate(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	category := env.seedCategory(t, "CNC Machines", "cnc-machines", domain.CategoryProduct)

	req := &domain.ProductCreateRequest{
		Name:        "VMC-850 Vertical Machining Center",
		Description: "Three-axis vertical machining center",
		Content:     "## Specs\n\nHigh rigidity casting.",
		Price:       128000,
		Images:      []string{"/uploads/vmc-850.jpg"},
		Specifications: map[string]string{
			"spindle_speed": "8000 rpm",
			"travel_x":      "850 mm",
		},
		CategoryID: category.ID,
	}

	product, err := env.ProductService.Create(ctx, req, env.Admin)
	require.NoError(t, err)

	assert.Equal(t, "vmc-850-vertical-machining-center", product.Slug)
	// Products with no explicit status go live immediately
	assert.Equal(t, domain.ProductActive, product.Status)
	assert.Equal(t, []string{"/uploads/vmc-850.jpg"}, product.Images)
	assert.Equal(t, "8000 rpm", product.Specifications["spindle_speed"])
	require.NotNil(t, product.Category)
	assert.Equal(t, "cnc-machines", product.Category.Slug)
}

func TestProductCreateRejectsArticleCategory(t *testing.T) {
	env := setupTestEnv(t)

	category := env.seedCategory(t, "Company News", "company-news", domain.CategoryArticle)

	_, err := env.ProductService.Create(context.Background(), &domain.ProductCreateRequest{
		Name:       "Misfiled",
		CategoryID: category.ID,
	}, env.Admin)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "categoryId", validationErr.Field)
}

func TestProductGetVisibility(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	product, err := env.ProductService.Create(ctx, &domain.ProductCreateRequest{
		Name:   "Discontinued Press",
		Status: domain.ProductInactive,
	}, env.Admin)
	require.NoError(t, err)

	got, err := env.ProductService.Get(ctx, product.Slug, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)

	_, err = env.ProductService.Get(ctx, product.ID, nil)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = env.ProductService.Get(ctx, product.Slug, env.Viewer)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductUpdateSlugFollowsName(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	product, err := env.ProductService.Create(ctx, &domain.ProductCreateRequest{
		Name: "Old Name", Price: 100,
	}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, "old-name", product.Slug)

	updated, err := env.ProductService.Update(ctx, product.ID, &domain.ProductUpdateRequest{
		Name:   "New Name",
		Price:  150,
		Status: domain.ProductActive,
	}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, "new-name", updated.Slug)
	assert.Equal(t, 150.0, updated.Price)

	// Unchanged name keeps the slug stable
	same, err := env.ProductService.Update(ctx, product.ID, &domain.ProductUpdateRequest{
		Name:   "New Name",
		Price:  150,
		Status: domain.ProductActive,
	}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, "new-name", same.Slug)
}

func TestProductListVisibilityAndPagination(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.ProductService.Create(ctx, &domain.ProductCreateRequest{
			Name: fmt.Sprintf("Lathe %d", i),
		}, env.Admin)
		require.NoError(t, err)
	}
	_, err := env.ProductService.Create(ctx, &domain.ProductCreateRequest{
		Name:   "Retired Lathe",
		Status: domain.ProductInactive,
	}, env.Admin)
	require.NoError(t, err)

	products, total, err := env.ProductService.List(ctx, &domain.ProductListFilter{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, products, 3)

	_, total, err = env.ProductService.List(ctx, &domain.ProductListFilter{}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	page, total, err := env.ProductService.List(ctx, &domain.ProductListFilter{
		Page: 2, Limit: 3,
	}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, page, 1)
}

func TestProductListSearch(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.ProductService.Create(ctx, &domain.ProductCreateRequest{
		Name:        "Hydraulic Press HP-200",
		Description: "200 ton hydraulic forming press",
	}, env.Admin)
	require.NoError(t, err)

	_, err = env.ProductService.Create(ctx, &domain.ProductCreateRequest{
		Name: "Belt Conveyor",
	}, env.Admin)
	require.NoError(t, err)

	// Search matches name or description
	_, total, err := env.ProductService.List(ctx, &domain.ProductListFilter{Search: "HP-200"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, total, err = env.ProductService.List(ctx, &domain.ProductListFilter{Search: "forming"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestProductDelete(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	product, err := env.ProductService.Create(ctx, &domain.ProductCreateRequest{
		Name: "Temporary",
	}, env.Admin)
	require.NoError(t, err)

	require.ErrorIs(t, env.ProductService.Delete(ctx, product.ID, env.Viewer), domain.ErrForbidden)
	require.NoError(t, env.ProductService.Delete(ctx, product.ID, env.Admin))

	_, err = env.ProductService.Get(ctx, product.ID, env.Admin)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
