package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yunwei-labs/mechsite/internal/auth"
	"github.com/yunwei-labs/mechsite/internal/config"
	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/internal/repository"
	"github.com/yunwei-labs/mechsite/pkg/logger"
)

// LoginResult carries the issued token alongside the authenticated user
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

// UserService handles account and authentication logic
type UserService struct {
	userRepo   repository.UserRepository
	jwtManager *auth.JWTManager
	bcryptCost int
	content    config.ContentConfig
	logger     *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	jwtManager *auth.JWTManager,
	bcryptCost int,
	content config.ContentConfig,
	log *logger.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		bcryptCost: bcryptCost,
		content:    content,
		logger:     log.WithComponent("user-service"),
	}
}

// Login authenticates a user by email and password and issues a JWT
func (s *UserService) Login(ctx context.Context, req *domain.UserLoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			// Same response as a wrong password so the endpoint does not
			// reveal which emails have accounts.
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error("Failed to look up user", "error", err)
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn("Failed login attempt", "user_id", user.ID)
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.logger.Info("User logged in", "user_id", user.ID)

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Create creates a new account. Only admins may create accounts.
func (s *UserService) Create(ctx context.Context, req *domain.UserCreateRequest, actor *domain.Actor) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", "error", err)
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err != domain.ErrUserAlreadyExists {
			s.logger.Error("Failed to store user", "error", err)
		}
		return nil, err
	}

	s.logger.Info("User created", "user_id", user.ID, "role", user.Role)

	return user, nil
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, id string, actor *domain.Actor) (*domain.User, error) {
	if !actor.IsAdmin() && (actor == nil || actor.ID != id) {
		return nil, domain.ErrForbidden
	}
	return s.userRepo.GetByID(ctx, id)
}

// List retrieves users with pagination. Admin only.
func (s *UserService) List(ctx context.Context, filter *domain.UserListFilter, actor *domain.Actor) ([]*domain.User, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, domain.ErrForbidden
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = s.content.ArticlePageSize
	}
	if filter.Limit > s.content.MaxPageSize {
		filter.Limit = s.content.MaxPageSize
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", "error", err)
		return nil, 0, err
	}

	return users, total, nil
}
