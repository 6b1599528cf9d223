package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "u-1",
		Email: "admin@example.com",
		Role:  domain.RoleAdmin,
	}
}

func TestGenerateAndValidate(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)

	token, expiresAt, err := m.Generate(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID)
	require.Equal(t, "admin@example.com", claims.Email)
	require.Equal(t, domain.RoleAdmin, claims.Role)

	actor := claims.Actor()
	require.True(t, actor.IsAdmin())
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	token, _, err := m.Generate(testUser())
	require.NoError(t, err)

	other := NewJWTManager("ffffffffffffffffffffffffffffffff", time.Hour)
	_, err = other.Validate(token)
	require.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("0123456789abcdef0123456789abcdef", -time.Minute)
	token, _, err := m.Generate(testUser())
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("admin123456", 10)
	require.NoError(t, err)
	require.True(t, CheckPassword(hash, "admin123456"))
	require.False(t, CheckPassword(hash, "wrong"))
}
