package revision

import (
	"context"

	"quizbank/internal/core/id"
	"quizbank/internal/domain"
)

// Repository defines Revision persistence.
type Repository interface {
	domain.Repository[*Revision]

	// ListByQuestion retrieves live revisions of one question.
	ListByQuestion(ctx context.Context, questionID id.ID, filter domain.ListFilter) (domain.ListResult[*Revision], error)
}
