package translation

import (
	"context"

	"quizbank/internal/core/id"
	"quizbank/internal/core/tx"
	"quizbank/internal/domain"
	"quizbank/internal/domain/question"
	"quizbank/internal/lifecycle"
)

// Service provides business logic for translations.
type Service struct {
	*domain.EntityService[*Translation]
	repo      Repository
	questions question.Repository
}

// NewService creates the translation service. The question is a restore
// parent and (question_id, locale) is live-unique.
func NewService(repo Repository, questions question.Repository, txm tx.Manager, events lifecycle.EventRecorder) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Translation]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "translation",
		Parents: []lifecycle.ParentRef[*Translation]{
			{
				Label:       "question",
				ParentID:    func(t *Translation) *id.ID { return &t.QuestionID },
				ResolveLive: domain.ResolveLiveVia(questions),
			},
		},
		Uniques: []lifecycle.UniqueConstraint{
			{Label: "question_id+locale", Fields: []string{"question_id", "locale"}},
		},
		Events: events,
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
		questions:     questions,
	}

	base.Hooks().OnBeforeCreate(svc.requireLiveQuestion)

	return svc
}

func (s *Service) requireLiveQuestion(ctx context.Context, t *Translation) error {
	_, err := s.questions.GetByID(ctx, t.QuestionID)
	return err
}

// ListByQuestion retrieves live translations of one question.
func (s *Service) ListByQuestion(ctx context.Context, questionID id.ID) ([]*Translation, error) {
	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, err
	}
	return s.repo.ListByQuestion(ctx, questionID)
}
