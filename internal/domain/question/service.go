package question

import (
	"context"

	"quizbank/internal/core/id"
	"quizbank/internal/core/tx"
	"quizbank/internal/domain"
	"quizbank/internal/domain/topic"
	"quizbank/internal/lifecycle"
)

// Service provides business logic for questions.
type Service struct {
	*domain.EntityService[*Question]
	repo   Repository
	topics topic.Repository
}

// NewService creates the question service. A question declares its topic as
// a restore parent: restoring a question whose topic is deleted or gone is
// refused until the topic is restored first.
func NewService(repo Repository, topics topic.Repository, txm tx.Manager, events lifecycle.EventRecorder) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Question]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "question",
		Parents: []lifecycle.ParentRef[*Question]{
			{
				Label:       "topic",
				ParentID:    func(q *Question) *id.ID { return &q.TopicID },
				ResolveLive: domain.ResolveLiveVia(topics),
			},
		},
		Events: events,
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
		topics:        topics,
	}

	base.Hooks().OnBeforeCreate(svc.requireLiveTopic)
	base.Hooks().OnBeforeUpdate(svc.requireLiveTopic)

	return svc
}

// requireLiveTopic rejects writes that would attach a question to a deleted
// or missing topic. Restore-time liveness is the engine's job; this guards
// the ordinary write path.
func (s *Service) requireLiveTopic(ctx context.Context, q *Question) error {
	_, err := s.topics.GetByID(ctx, q.TopicID)
	return err
}

// ListByTopic retrieves live questions of one topic.
func (s *Service) ListByTopic(ctx context.Context, topicID id.ID, filter domain.ListFilter) (domain.ListResult[*Question], error) {
	if _, err := s.topics.GetByID(ctx, topicID); err != nil {
		return domain.ListResult[*Question]{}, err
	}
	return s.repo.ListByTopic(ctx, topicID, filter)
}
