package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yunwei-labs/mechsite/internal/auth"
	"github.com/yunwei-labs/mechsite/internal/config"
	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/internal/repository/sqlite"
	"github.com/yunwei-labs/mechsite/pkg/logger"
)

type testEnv struct {
	DB              *sqlite.DB
	ArticleRepo     *sqlite.ArticleRepo
	ProductRepo     *sqlite.ProductRepo
	CategoryRepo    *sqlite.CategoryRepo
	TagRepo         *sqlite.TagRepo
	UserRepo        *sqlite.UserRepo
	ArticleService  *ArticleService
	ProductService  *ProductService
	CategoryService *CategoryService
	TagService      *TagService
	UserService     *UserService
	Admin           *domain.Actor
	Viewer          *domain.Actor
}

func testContentConfig() config.ContentConfig {
	return config.ContentConfig{
		ExcerptLength:      200,
		ArticlePageSize:    10,
		ProductPageSize:    12,
		MaxPageSize:        100,
		SlugRetryLimit:     50,
		SearchResultsLimit: 20,
	}
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"), 5, 2)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log, err := logger.New("error", "text")
	require.NoError(t, err)

	articleRepo := sqlite.NewArticleRepo(db)
	productRepo := sqlite.NewProductRepo(db)
	categoryRepo := sqlite.NewCategoryRepo(db)
	tagRepo := sqlite.NewTagRepo(db)
	userRepo := sqlite.NewUserRepo(db)

	content := testContentConfig()
	jwtManager := auth.NewJWTManager("test-secret-test-secret-test-secret", time.Hour)

	env := &testEnv{
		DB:              db,
		ArticleRepo:     articleRepo,
		ProductRepo:     productRepo,
		CategoryRepo:    categoryRepo,
		TagRepo:         tagRepo,
		UserRepo:        userRepo,
		ArticleService:  NewArticleService(articleRepo, categoryRepo, tagRepo, nil, nil, content, log),
		ProductService:  NewProductService(productRepo, categoryRepo, nil, nil, content, log),
		CategoryService: NewCategoryService(categoryRepo, content, log),
		TagService:      NewTagService(tagRepo, log),
		UserService:     NewUserService(userRepo, jwtManager, 10, content, log),
	}

	admin := env.seedUser(t, "admin@example.com", "Admin", domain.RoleAdmin)
	viewer := env.seedUser(t, "viewer@example.com", "Viewer", domain.RoleUser)
	env.Admin = &domain.Actor{ID: admin.ID, Role: admin.Role}
	env.Viewer = &domain.Actor{ID: viewer.ID, Role: viewer.Role}

	return env
}

func (env *testEnv) seedUser(t *testing.T, email, name string, role domain.Role) *domain.User {
	t.Helper()

	hash, err := auth.HashPassword("password123", 10)
	require.NoError(t, err)

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, env.UserRepo.Create(context.Background(), user))
	return user
}

func (env *testEnv) seedCategory(t *testing.T, name, slug string, ctype domain.CategoryType) *domain.Category {
	t.Helper()

	now := time.Now()
	category := &domain.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		Type:      ctype,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, env.CategoryRepo.Create(context.Background(), category))
	return category
}

func (env *testEnv) seedTag(t *testing.T, name, slug string) *domain.Tag {
	t.Helper()

	tag := &domain.Tag{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		CreatedAt: time.Now(),
	}
	require.NoError(t, env.TagRepo.Create(context.Background(), tag))
	return tag
}
