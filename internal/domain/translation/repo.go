package translation

import (
	"context"

	"quizbank/internal/core/id"
	"quizbank/internal/domain"
)

// Repository defines Translation persistence.
type Repository interface {
	domain.Repository[*Translation]

	// ListByQuestion retrieves live translations of one question.
	ListByQuestion(ctx context.Context, questionID id.ID) ([]*Translation, error)
}
