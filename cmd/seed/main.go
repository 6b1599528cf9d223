package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/yunwei-labs/mechsite/internal/auth"
	"github.com/yunwei-labs/mechsite/internal/config"
	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/internal/repository/sqlite"
	"github.com/yunwei-labs/mechsite/pkg/logger"
	"github.com/yunwei-labs/mechsite/pkg/slug"
)

// seedCategory is one category to ensure exists
type seedCategory struct {
	name        string
	slug        string
	description string
	ctype       domain.CategoryType
}

var seedCategories = []seedCategory{
	{"数控机床", "cnc-machines", "高精度数控加工设备", domain.CategoryProduct},
	{"工业机器人", "robots", "智能化工业机器人系统", domain.CategoryProduct},
	{"液压设备", "hydraulic", "高性能液压系统设备", domain.CategoryProduct},
	{"公司新闻", "company-news", "公司最新动态和新闻", domain.CategoryArticle},
	{"行业动态", "industry-news", "机械工程行业最新动态", domain.CategoryArticle},
	{"技术文章", "technical-articles", "技术分享和教程文章", domain.CategoryArticle},
}

var seedTags = []struct {
	name string
	slug string
}{
	{"自动化", "automation"},
	{"制造业", "manufacturing"},
	{"技术", "technology"},
	{"创新", "innovation"},
}

func main() {
	adminEmail := flag.String("admin-email", "admin@mechanical-eng.com", "admin account email")
	adminName := flag.String("admin-name", "管理员", "admin account display name")
	adminPassword := flag.String("admin-password", "", "admin account password (required on first run)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Level, "text")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := sqlite.New(cfg.Database.Path, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := sqlite.NewUserRepo(db)
	categoryRepo := sqlite.NewCategoryRepo(db)
	tagRepo := sqlite.NewTagRepo(db)

	// Admin account
	if _, err := userRepo.GetByEmail(ctx, *adminEmail); err == domain.ErrUserNotFound {
		if *adminPassword == "" {
			log.Fatal("Admin account does not exist; -admin-password is required")
		}
		hash, err := auth.HashPassword(*adminPassword, cfg.Auth.BcryptCost)
		if err != nil {
			log.Fatal("Failed to hash admin password", "error", err)
		}
		now := time.Now()
		admin := &domain.User{
			ID:           uuid.New().String(),
			Email:        *adminEmail,
			Name:         *adminName,
			PasswordHash: hash,
			Role:         domain.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatal("Failed to create admin account", "error", err)
		}
		log.Info("Admin account created", "email", *adminEmail)
	} else if err != nil {
		log.Fatal("Failed to look up admin account", "error", err)
	} else {
		log.Info("Admin account already exists", "email", *adminEmail)
	}

	// Categories
	for _, sc := range seedCategories {
		if _, err := categoryRepo.GetBySlug(ctx, sc.slug); err == nil {
			continue
		} else if err != domain.ErrCategoryNotFound {
			log.Fatal("Failed to look up category", "slug", sc.slug, "error", err)
		}
		now := time.Now()
		category := &domain.Category{
			ID:          uuid.New().String(),
			Name:        sc.name,
			Slug:        sc.slug,
			Description: sc.description,
			Type:        sc.ctype,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := categoryRepo.Create(ctx, category); err != nil {
			log.Fatal("Failed to create category", "slug", sc.slug, "error", err)
		}
		log.Info("Category created", "slug", sc.slug, "type", sc.ctype)
	}

	// Tags. A duplicate slug means the tag is already seeded.
	for _, st := range seedTags {
		tagSlug := st.slug
		if tagSlug == "" {
			tagSlug = slug.Make(st.name)
		}
		tag := &domain.Tag{
			ID:        uuid.New().String(),
			Name:      st.name,
			Slug:      tagSlug,
			CreatedAt: time.Now(),
		}
		if err := tagRepo.Create(ctx, tag); err != nil {
			if err == domain.ErrDuplicateSlug {
				continue
			}
			log.Fatal("Failed to create tag", "slug", tagSlug, "error", err)
		}
		log.Info("Tag created", "slug", tagSlug)
	}

	log.Info("Seeding complete")
}
