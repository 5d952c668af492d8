package user

import (
	"context"

	"quizbank/internal/domain"
)

// Repository defines User persistence.
type Repository interface {
	domain.Repository[*User]

	// GetByEmail retrieves a live user by email (lowercased).
	// Deleted users are not visible here; login against a deleted
	// account fails as not found.
	GetByEmail(ctx context.Context, email string) (*User, error)
}
