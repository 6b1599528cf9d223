package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/internal/repository"
	"github.com/yunwei-labs/mechsite/pkg/logger"
	"github.com/yunwei-labs/mechsite/pkg/slug"
)

// TagService handles tag-related business logic
type TagService struct {
	tagRepo repository.TagRepository
	logger  *logger.Logger
}

// NewTagService creates a new tag service
func NewTagService(tagRepo repository.TagRepository, log *logger.Logger) *TagService {
	return &TagService{
		tagRepo: tagRepo,
		logger:  log.WithComponent("tag-service"),
	}
}

// Create creates a new tag. Tag slugs are derived once and never probed:
// two tags with colliding names are the same tag, so the UNIQUE index
// rejecting the insert is the desired outcome.
func (s *TagService) Create(ctx context.Context, req *domain.TagCreateRequest, actor *domain.Actor) (*domain.Tag, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	tag := &domain.Tag{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Slug:      slug.Make(req.Name),
		CreatedAt: time.Now(),
	}

	if err := tag.Validate(); err != nil {
		return nil, err
	}

	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if err != domain.ErrDuplicateSlug {
			s.logger.Error("Failed to store tag", "tag_id", tag.ID, "error", err)
		}
		return nil, err
	}

	s.logger.Info("Tag created", "tag_id", tag.ID, "slug", tag.Slug)

	return tag, nil
}

// List retrieves all tags
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list tags", "error", err)
		return nil, err
	}
	return tags, nil
}

// Delete deletes a tag and detaches it from all articles
func (s *TagService) Delete(ctx context.Context, id string, actor *domain.Actor) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	if err := s.tagRepo.Delete(ctx, id); err != nil {
		if err != domain.ErrTagNotFound {
			s.logger.Error("Failed to delete tag", "tag_id", id, "error", err)
		}
		return err
	}

	s.logger.Info("Tag deleted", "tag_id", id)

	return nil
}
