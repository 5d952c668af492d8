package userquestion

import (
	"context"
	"time"

	"quizbank/internal/core/id"
	"quizbank/internal/domain"
)

// Repository defines UserQuestion persistence.
type Repository interface {
	domain.Repository[*UserQuestion]

	// GetByUserAndQuestion retrieves the live state for one (user, question) pair.
	GetByUserAndQuestion(ctx context.Context, userID, questionID id.ID) (*UserQuestion, error)

	// ListDue retrieves live states due at or before now, soonest first.
	ListDue(ctx context.Context, userID id.ID, now time.Time, limit int) ([]*UserQuestion, error)
}
