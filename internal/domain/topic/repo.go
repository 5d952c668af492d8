package topic

import (
	"context"

	"quizbank/internal/domain"
)

// Repository defines Topic persistence.
type Repository interface {
	domain.Repository[*Topic]

	// GetBySlug retrieves a live topic by slug.
	GetBySlug(ctx context.Context, slug string) (*Topic, error)
}
