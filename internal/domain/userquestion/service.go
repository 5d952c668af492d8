package userquestion

import (
	"context"
	"time"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
	"quizbank/internal/core/tx"
	"quizbank/internal/domain"
	"quizbank/internal/domain/question"
	"quizbank/internal/domain/user"
	"quizbank/internal/lifecycle"
)

// Service provides business logic for per-user scheduling state.
type Service struct {
	*domain.EntityService[*UserQuestion]
	repo Repository
}

// NewService creates the user-question service. Both the user and the
// question are restore parents, and the (user_id, question_id) pair is
// live-unique, so restoring old state is refused while a fresh live pair
// exists.
func NewService(repo Repository, users user.Repository, questions question.Repository, txm tx.Manager, events lifecycle.EventRecorder) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*UserQuestion]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "user_question",
		Parents: []lifecycle.ParentRef[*UserQuestion]{
			{
				Label:       "user",
				ParentID:    func(uq *UserQuestion) *id.ID { return &uq.UserID },
				ResolveLive: domain.ResolveLiveVia(users),
			},
			{
				Label:       "question",
				ParentID:    func(uq *UserQuestion) *id.ID { return &uq.QuestionID },
				ResolveLive: domain.ResolveLiveVia(questions),
			},
		},
		Uniques: []lifecycle.UniqueConstraint{
			{Label: "user_id+question_id", Fields: []string{"user_id", "question_id"}},
		},
		Events: events,
	})

	return &Service{
		EntityService: base,
		repo:          repo,
	}
}

// GetOrCreate returns the live state for the pair, creating the initial
// state on first contact with the question.
func (s *Service) GetOrCreate(ctx context.Context, userID, questionID id.ID) (*UserQuestion, error) {
	uq, err := s.repo.GetByUserAndQuestion(ctx, userID, questionID)
	if err == nil {
		return uq, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	uq = New(userID, questionID)
	if err := s.Create(ctx, uq); err != nil {
		return nil, err
	}
	return uq, nil
}

// ListDue retrieves the user's review queue, soonest first.
func (s *Service) ListDue(ctx context.Context, userID id.ID, now time.Time, limit int) ([]*UserQuestion, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	return s.repo.ListDue(ctx, userID, now, limit)
}
