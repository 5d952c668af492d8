package revision

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
)

func draft() *Revision {
	return New(id.New(), id.New(), "What is a channel?", "A typed conduit")
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid draft", func(t *testing.T) {
		assert.NoError(t, draft().Validate(ctx))
	})

	t.Run("missing question", func(t *testing.T) {
		r := draft()
		r.QuestionID = id.Nil()
		assert.True(t, apperror.IsValidation(r.Validate(ctx)))
	})

	t.Run("missing author", func(t *testing.T) {
		r := draft()
		r.AuthorID = id.Nil()
		assert.True(t, apperror.IsValidation(r.Validate(ctx)))
	})

	t.Run("missing prompt", func(t *testing.T) {
		r := draft()
		r.Prompt = ""
		assert.True(t, apperror.IsValidation(r.Validate(ctx)))
	})

	t.Run("unknown status", func(t *testing.T) {
		r := draft()
		r.Status = Status("archived")
		assert.True(t, apperror.IsValidation(r.Validate(ctx)))
	})
}

func TestWorkflow_HappyPath(t *testing.T) {
	reviewer := id.New()
	note := "looks good"
	now := time.Now().UTC()

	r := draft()
	assert.Equal(t, StatusDraft, r.Status)

	require.NoError(t, r.Submit())
	assert.Equal(t, StatusPending, r.Status)

	require.NoError(t, r.Approve(reviewer, &note, now))
	assert.Equal(t, StatusApproved, r.Status)
	require.NotNil(t, r.ReviewerID)
	assert.Equal(t, reviewer, *r.ReviewerID)
	require.NotNil(t, r.ReviewedAt)
	assert.Equal(t, now, *r.ReviewedAt)
	require.NotNil(t, r.ReviewNote)
	assert.Equal(t, note, *r.ReviewNote)
}

func TestWorkflow_RejectAndReopen(t *testing.T) {
	reviewer := id.New()
	note := "prompt is ambiguous"
	now := time.Now().UTC()

	r := draft()
	require.NoError(t, r.Submit())
	require.NoError(t, r.Reject(reviewer, &note, now))
	assert.Equal(t, StatusRejected, r.Status)

	require.NoError(t, r.Reopen())
	assert.Equal(t, StatusDraft, r.Status)
	assert.Nil(t, r.ReviewerID)
	assert.Nil(t, r.ReviewedAt)
	assert.Nil(t, r.ReviewNote)

	// Reworked draft can go around again.
	require.NoError(t, r.Submit())
	require.NoError(t, r.Approve(reviewer, nil, now))
}

func TestWorkflow_InvalidTransitions(t *testing.T) {
	reviewer := id.New()
	now := time.Now().UTC()

	t.Run("draft cannot be approved directly", func(t *testing.T) {
		err := draft().Approve(reviewer, nil, now)
		assert.True(t, apperror.IsInvalidTransition(err))
	})

	t.Run("draft cannot be rejected directly", func(t *testing.T) {
		err := draft().Reject(reviewer, nil, now)
		assert.True(t, apperror.IsInvalidTransition(err))
	})

	t.Run("pending cannot be resubmitted", func(t *testing.T) {
		r := draft()
		require.NoError(t, r.Submit())
		assert.True(t, apperror.IsInvalidTransition(r.Submit()))
	})

	t.Run("approved is terminal", func(t *testing.T) {
		r := draft()
		require.NoError(t, r.Submit())
		require.NoError(t, r.Approve(reviewer, nil, now))

		assert.True(t, apperror.IsInvalidTransition(r.Submit()))
		assert.True(t, apperror.IsInvalidTransition(r.Reject(reviewer, nil, now)))
		assert.True(t, apperror.IsInvalidTransition(r.Reopen()))
	})

	t.Run("failed reviewer action does not stamp review fields", func(t *testing.T) {
		r := draft()
		require.Error(t, r.Approve(reviewer, nil, now))
		assert.Nil(t, r.ReviewerID)
		assert.Nil(t, r.ReviewedAt)
	})

	t.Run("transition error names both states", func(t *testing.T) {
		err := draft().Reject(reviewer, nil, now)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "draft", appErr.Details["from"])
		assert.Equal(t, "rejected", appErr.Details["to"])
	})
}
