package question

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
)

func flashcard() *Question {
	return New(id.New(), "What starts a goroutine?", "go")
}

func multipleChoice() *Question {
	q := New(id.New(), "Which is a built-in type?", "")
	q.Kind = KindMultipleChoice
	q.Choices = Choices{
		{Text: "rune", Correct: true},
		{Text: "char", Correct: false},
	}
	return q
}

func TestNew_Defaults(t *testing.T) {
	q := flashcard()
	assert.Equal(t, KindFlashcard, q.Kind)
	assert.Equal(t, 3, q.Difficulty)
	assert.False(t, id.IsNil(q.ID))
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid flashcard", func(t *testing.T) {
		assert.NoError(t, flashcard().Validate(ctx))
	})

	t.Run("valid multiple choice", func(t *testing.T) {
		assert.NoError(t, multipleChoice().Validate(ctx))
	})

	t.Run("missing topic", func(t *testing.T) {
		q := flashcard()
		q.TopicID = id.Nil()
		assert.True(t, apperror.IsValidation(q.Validate(ctx)))
	})

	t.Run("missing prompt", func(t *testing.T) {
		q := flashcard()
		q.Prompt = ""
		assert.True(t, apperror.IsValidation(q.Validate(ctx)))
	})

	t.Run("unknown kind", func(t *testing.T) {
		q := flashcard()
		q.Kind = Kind("essay")
		assert.True(t, apperror.IsValidation(q.Validate(ctx)))
	})

	t.Run("flashcard requires an answer", func(t *testing.T) {
		q := flashcard()
		q.Answer = ""
		assert.True(t, apperror.IsValidation(q.Validate(ctx)))
	})

	t.Run("multiple choice requires two choices", func(t *testing.T) {
		q := multipleChoice()
		q.Choices = q.Choices[:1]
		assert.True(t, apperror.IsValidation(q.Validate(ctx)))
	})

	t.Run("multiple choice requires a correct choice", func(t *testing.T) {
		q := multipleChoice()
		for i := range q.Choices {
			q.Choices[i].Correct = false
		}
		assert.True(t, apperror.IsValidation(q.Validate(ctx)))
	})

	t.Run("multiple choice does not require an answer", func(t *testing.T) {
		q := multipleChoice()
		q.Answer = ""
		assert.NoError(t, q.Validate(ctx))
	})

	t.Run("difficulty bounds", func(t *testing.T) {
		for _, d := range []int{0, -1, 6} {
			q := flashcard()
			q.Difficulty = d
			assert.True(t, apperror.IsValidation(q.Validate(ctx)), "difficulty %d must be rejected", d)
		}
	})
}

func TestChoices_SQL(t *testing.T) {
	t.Run("round trip through driver value", func(t *testing.T) {
		in := Choices{{Text: "rune", Correct: true}, {Text: "char", Correct: false}}

		v, err := in.Value()
		require.NoError(t, err)

		var out Choices
		require.NoError(t, out.Scan(v))
		assert.Equal(t, in, out)
	})

	t.Run("empty choices store as NULL", func(t *testing.T) {
		v, err := Choices(nil).Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("NULL scans to nil", func(t *testing.T) {
		out := Choices{{Text: "stale"}}
		require.NoError(t, out.Scan(nil))
		assert.Nil(t, out)
	})

	t.Run("string source scans", func(t *testing.T) {
		var out Choices
		require.NoError(t, out.Scan(`[{"text":"rune","correct":true}]`))
		require.Len(t, out, 1)
		assert.True(t, out[0].Correct)
	})

	t.Run("unsupported source fails", func(t *testing.T) {
		var out Choices
		assert.Error(t, out.Scan(42))
	})
}
