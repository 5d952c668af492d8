// Package cascade composes single-entity restores into subtree operations.
package cascade

import (
	"context"

	"quizbank/internal/core/id"
	"quizbank/internal/core/tx"
	"quizbank/internal/domain/question"
	"quizbank/internal/domain/topic"
)

// Service restores a topic together with its soft-deleted questions.
type Service struct {
	topics    *topic.Service
	questions *question.Service
	qRepo     question.Repository
	txManager tx.Manager
}

func NewService(topics *topic.Service, questions *question.Service, qRepo question.Repository, txm tx.Manager) *Service {
	return &Service{
		topics:    topics,
		questions: questions,
		qRepo:     qRepo,
		txManager: txm,
	}
}

// Result reports what a cascade restored.
type Result struct {
	Topic     *topic.Topic         `json:"topic"`
	Questions []*question.Question `json:"questions"`
}

// RestoreTopic restores the topic and then every soft-deleted question under
// it, all inside one transaction. The inner restores join this transaction
// rather than opening their own, so the cascade is atomic: any blocked or
// conflicting question rolls the whole subtree back.
func (s *Service) RestoreTopic(ctx context.Context, topicID id.ID) (*Result, error) {
	var res Result

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := s.topics.Restore(ctx, topicID)
		if err != nil {
			return err
		}
		res.Topic = t

		deleted, err := s.qRepo.ListDeletedByTopic(ctx, topicID)
		if err != nil {
			return err
		}
		for _, q := range deleted {
			restored, err := s.questions.Restore(ctx, q.GetID())
			if err != nil {
				return err
			}
			res.Questions = append(res.Questions, restored)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
