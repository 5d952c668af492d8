package translation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
)

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid locales", func(t *testing.T) {
		for _, locale := range []string{"de", "pt-BR", "uk", "zh-Hans", "ast"} {
			tr := New(id.New(), locale, "Was startet eine Goroutine?", "go")
			assert.NoError(t, tr.Validate(ctx), "locale %q must be accepted", locale)
		}
	})

	t.Run("malformed locales", func(t *testing.T) {
		for _, locale := range []string{"", "DE", "d", "de_DE", "german", "de-"} {
			tr := New(id.New(), locale, "prompt", "answer")
			assert.True(t, apperror.IsValidation(tr.Validate(ctx)), "locale %q must be rejected", locale)
		}
	})

	t.Run("missing question", func(t *testing.T) {
		tr := New(id.Nil(), "de", "prompt", "answer")
		assert.True(t, apperror.IsValidation(tr.Validate(ctx)))
	})

	t.Run("missing prompt", func(t *testing.T) {
		tr := New(id.New(), "de", "", "answer")
		assert.True(t, apperror.IsValidation(tr.Validate(ctx)))
	})
}
