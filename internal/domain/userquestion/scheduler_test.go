package userquestion

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
)

func fresh() *UserQuestion {
	return New(id.New(), id.New())
}

func TestApply_GradeBounds(t *testing.T) {
	now := time.Now().UTC()

	for _, grade := range []int{-1, 6, 100} {
		uq := fresh()
		err := uq.Apply(grade, now)
		assert.True(t, apperror.IsValidation(err), "grade %d must be rejected", grade)
	}

	for grade := 0; grade <= 5; grade++ {
		uq := fresh()
		assert.NoError(t, uq.Apply(grade, now), "grade %d must be accepted", grade)
	}
}

func TestApply_EaseFactor(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		startEF string
		grade   int
		wantEF  string
	}{
		{"perfect answer raises ease", "2.50", 5, "2.60"},
		{"hesitant answer keeps ease", "2.50", 4, "2.50"},
		{"hard answer lowers ease", "2.50", 3, "2.36"},
		{"failure lowers ease more", "2.50", 2, "2.18"},
		{"blackout lowers ease most", "2.50", 0, "1.70"},
		{"ease never drops below the floor", "1.30", 0, "1.30"},
		{"floor applies mid-calculation", "1.35", 1, "1.30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uq := fresh()
			uq.EaseFactor = decimal.RequireFromString(tt.startEF)

			require.NoError(t, uq.Apply(tt.grade, now))
			assert.Equal(t, tt.wantEF, uq.EaseFactor.StringFixed(2))
		})
	}
}

func TestApply_Intervals(t *testing.T) {
	now := time.Now().UTC()

	t.Run("first successful review is due in one day", func(t *testing.T) {
		uq := fresh()
		require.NoError(t, uq.Apply(4, now))

		assert.Equal(t, 1, uq.IntervalDays)
		assert.Equal(t, 1, uq.Repetitions)
		assert.Equal(t, now.AddDate(0, 0, 1), uq.DueAt)
	})

	t.Run("second successful review is due in six days", func(t *testing.T) {
		uq := fresh()
		require.NoError(t, uq.Apply(4, now))
		require.NoError(t, uq.Apply(4, now))

		assert.Equal(t, 6, uq.IntervalDays)
		assert.Equal(t, 2, uq.Repetitions)
	})

	t.Run("later reviews multiply by ease and round up", func(t *testing.T) {
		uq := fresh()
		require.NoError(t, uq.Apply(4, now)) // 1 day
		require.NoError(t, uq.Apply(4, now)) // 6 days
		require.NoError(t, uq.Apply(4, now))

		// 6 * 2.50 = 15
		assert.Equal(t, 15, uq.IntervalDays)
		assert.Equal(t, 3, uq.Repetitions)

		require.NoError(t, uq.Apply(4, now))
		// 15 * 2.50 = 37.5, ceil -> 38
		assert.Equal(t, 38, uq.IntervalDays)
	})

	t.Run("failure resets the streak but keeps ease history", func(t *testing.T) {
		uq := fresh()
		require.NoError(t, uq.Apply(5, now))
		require.NoError(t, uq.Apply(5, now))
		easeBefore := uq.EaseFactor

		require.NoError(t, uq.Apply(1, now))

		assert.Equal(t, 0, uq.Repetitions)
		assert.Equal(t, 1, uq.IntervalDays)
		assert.Equal(t, now.AddDate(0, 0, 1), uq.DueAt)
		assert.True(t, uq.EaseFactor.LessThan(easeBefore), "failed answer must lower ease")
	})

	t.Run("recovery after failure starts over", func(t *testing.T) {
		uq := fresh()
		require.NoError(t, uq.Apply(5, now))
		require.NoError(t, uq.Apply(5, now))
		require.NoError(t, uq.Apply(0, now))
		require.NoError(t, uq.Apply(4, now))

		assert.Equal(t, 1, uq.IntervalDays)
		assert.Equal(t, 1, uq.Repetitions)
	})
}

func TestApply_LastGrade(t *testing.T) {
	now := time.Now().UTC()
	uq := fresh()
	require.Nil(t, uq.LastGrade)

	require.NoError(t, uq.Apply(3, now))
	require.NotNil(t, uq.LastGrade)
	assert.Equal(t, 3, *uq.LastGrade)

	require.NoError(t, uq.Apply(5, now))
	assert.Equal(t, 5, *uq.LastGrade)
}

func TestIsDue(t *testing.T) {
	now := time.Now().UTC()
	uq := fresh()

	uq.DueAt = now.Add(-time.Minute)
	assert.True(t, uq.IsDue(now))

	uq.DueAt = now
	assert.True(t, uq.IsDue(now))

	uq.DueAt = now.Add(time.Minute)
	assert.False(t, uq.IsDue(now))
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh state is valid", func(t *testing.T) {
		assert.NoError(t, fresh().Validate(ctx))
	})

	t.Run("missing user", func(t *testing.T) {
		uq := fresh()
		uq.UserID = id.Nil()
		assert.True(t, apperror.IsValidation(uq.Validate(ctx)))
	})

	t.Run("missing question", func(t *testing.T) {
		uq := fresh()
		uq.QuestionID = id.Nil()
		assert.True(t, apperror.IsValidation(uq.Validate(ctx)))
	})

	t.Run("ease below floor", func(t *testing.T) {
		uq := fresh()
		uq.EaseFactor = decimal.RequireFromString("1.20")
		assert.True(t, apperror.IsValidation(uq.Validate(ctx)))
	})
}
