package topic

import (
	"context"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/tx"
	"quizbank/internal/domain"
	"quizbank/internal/lifecycle"
)

// Service provides business logic for topics.
type Service struct {
	*domain.EntityService[*Topic]
	repo Repository
}

// NewService creates the topic service. Slug is live-unique; topics have
// no parents, so restore is gated on the slug check alone.
func NewService(repo Repository, txm tx.Manager, events lifecycle.EventRecorder) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Topic]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "topic",
		Uniques: []lifecycle.UniqueConstraint{
			{Label: "slug", Fields: []string{"slug"}},
		},
		Events: events,
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
	}

	base.Hooks().OnBeforeCreate(svc.deriveSlug)

	return svc
}

func (s *Service) deriveSlug(_ context.Context, t *Topic) error {
	if t.Slug == "" {
		t.Slug = Slugify(t.Title)
	}
	return nil
}

// GetBySlug retrieves a live topic by slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Topic, error) {
	t, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("topic", slug)
		}
		return nil, err
	}
	return t, nil
}
