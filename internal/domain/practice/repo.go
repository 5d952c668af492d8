package practice

import (
	"context"

	"quizbank/internal/core/id"
)

// Repository defines practice-log persistence. Insert-only by design.
type Repository interface {
	// Insert appends one attempt. Honors a transaction travelling in ctx.
	Insert(ctx context.Context, log *Log) error

	// ListByUser returns the user's attempts, newest first.
	ListByUser(ctx context.Context, userID id.ID, limit, offset int) ([]*Log, error)
}
