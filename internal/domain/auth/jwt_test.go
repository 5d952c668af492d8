package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken(
		"u-1", "editor@quizbank.local", "editor",
		[]string{"content:restore"}, false,
	)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.UserID)
	assert.Equal(t, "editor@quizbank.local", user.Email)
	assert.Equal(t, "editor", user.Role)
	assert.Equal(t, []string{"content:restore"}, user.Permissions)
	assert.False(t, user.IsAdmin)
}

func TestJWT_AdminFlag(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, _, err := svc.GenerateAccessToken("u-1", "a@b.c", "admin", nil, true)
	require.NoError(t, err)

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}

func TestJWT_Rejections(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(DefaultJWTConfig("other-secret"))
		token, _, err := other.GenerateAccessToken("u-1", "a@b.c", "learner", nil, false)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		cfg := DefaultJWTConfig("test-secret")
		cfg.AccessTokenTTL = -time.Minute
		expired := NewJWTService(cfg)

		token, _, err := expired.GenerateAccessToken("u-1", "a@b.c", "learner", nil, false)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}
