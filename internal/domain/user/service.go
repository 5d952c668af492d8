package user

import (
	"context"
	"strings"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/tx"
	"quizbank/internal/domain"
	"quizbank/internal/lifecycle"
)

// Service provides business logic for user accounts.
type Service struct {
	*domain.EntityService[*User]
	repo Repository
}

// NewService creates the user service. Email is live-unique: a deleted
// user's address may be taken over by a new signup, and restoring the old
// account is then refused until the conflict clears.
func NewService(repo Repository, txm tx.Manager, events lifecycle.EventRecorder) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*User]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "user",
		Uniques: []lifecycle.UniqueConstraint{
			{Label: "email", Fields: []string{"email"}},
		},
		Events: events,
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
	}

	base.Hooks().OnBeforeCreate(svc.normalize)
	base.Hooks().OnBeforeUpdate(svc.normalize)

	return svc
}

func (s *Service) normalize(_ context.Context, u *User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// GetByEmail retrieves a live user by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, err
	}
	return u, nil
}
