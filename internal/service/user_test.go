package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

func TestUserLogin(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	result, err := env.UserService.Login(ctx, &domain.UserLoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, domain.RoleAdmin, result.User.Role)
	assert.True(t, result.ExpiresAt.After(result.User.CreatedAt))

	// Wrong password and unknown email both yield the same error
	_, err = env.UserService.Login(ctx, &domain.UserLoginRequest{
		Email:    "admin@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = env.UserService.Login(ctx, &domain.UserLoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserCreate(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user, err := env.UserService.Create(ctx, &domain.UserCreateRequest{
		Email:    "editor@example.com",
		Name:     "Editor",
		Password: "supersecret",
	}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)

	// The new account can log in
	_, err = env.UserService.Login(ctx, &domain.UserLoginRequest{
		Email:    "editor@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	// Duplicate email is rejected
	_, err = env.UserService.Create(ctx, &domain.UserCreateRequest{
		Email:    "editor@example.com",
		Name:     "Imposter",
		Password: "supersecret",
	}, env.Admin)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	// Only admins create accounts
	_, err = env.UserService.Create(ctx, &domain.UserCreateRequest{
		Email:    "other@example.com",
		Name:     "Other",
		Password: "supersecret",
	}, env.Viewer)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserGetAuthorization(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	// Users read their own account
	self, err := env.UserService.Get(ctx, env.Viewer.ID, env.Viewer)
	require.NoError(t, err)
	assert.Equal(t, env.Viewer.ID, self.ID)

	// But not anyone else's
	_, err = env.UserService.Get(ctx, env.Admin.ID, env.Viewer)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Admins read anyone
	other, err := env.UserService.Get(ctx, env.Viewer.ID, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, env.Viewer.ID, other.ID)
}

func TestUserList(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	users, total, err := env.UserService.List(ctx, &domain.UserListFilter{}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, users, 2)

	admins, total, err := env.UserService.List(ctx, &domain.UserListFilter{
		Role: domain.RoleAdmin,
	}, env.Admin)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, admins, 1)
	assert.Equal(t, env.Admin.ID, admins[0].ID)

	_, _, err = env.UserService.List(ctx, &domain.UserListFilter{}, env.Viewer)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
