package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"quizbank/internal/core/apperror"
)

func TestNew_Defaults(t *testing.T) {
	u := New("  Alice@Example.COM ", "Alice")

	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, RoleLearner, u.Role)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsAdmin())
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid user", func(t *testing.T) {
		assert.NoError(t, New("alice@example.com", "Alice").Validate(ctx))
	})

	t.Run("missing email", func(t *testing.T) {
		u := New("", "Alice")
		assert.True(t, apperror.IsValidation(u.Validate(ctx)))
	})

	t.Run("malformed email", func(t *testing.T) {
		for _, email := range []string{"alice", "alice@", "@example.com", "a b@example.com", "alice@example"} {
			u := New(email, "Alice")
			assert.True(t, apperror.IsValidation(u.Validate(ctx)), "email %q must be rejected", email)
		}
	})

	t.Run("missing display name", func(t *testing.T) {
		u := New("alice@example.com", "")
		assert.True(t, apperror.IsValidation(u.Validate(ctx)))
	})

	t.Run("unknown role", func(t *testing.T) {
		u := New("alice@example.com", "Alice")
		u.Role = Role("superuser")
		assert.True(t, apperror.IsValidation(u.Validate(ctx)))
	})
}

func TestIsAdmin(t *testing.T) {
	u := New("root@example.com", "Root")
	u.Role = RoleAdmin
	assert.True(t, u.IsAdmin())

	u.Role = RoleEditor
	assert.False(t, u.IsAdmin())
}
