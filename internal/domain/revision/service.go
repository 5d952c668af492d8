package revision

import (
	"context"
	"time"

	"quizbank/internal/core/id"
	"quizbank/internal/core/security"
	"quizbank/internal/core/tx"
	"quizbank/internal/domain"
	"quizbank/internal/domain/question"
	"quizbank/internal/lifecycle"
)

// Service provides the revision review workflow.
type Service struct {
	*domain.EntityService[*Revision]
	repo      Repository
	questions question.Repository
	txManager tx.Manager
}

// NewService creates the revision service. A revision declares its question
// as a restore parent.
func NewService(repo Repository, questions question.Repository, txm tx.Manager, events lifecycle.EventRecorder) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Revision]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "revision",
		Parents: []lifecycle.ParentRef[*Revision]{
			{
				Label:       "question",
				ParentID:    func(r *Revision) *id.ID { return &r.QuestionID },
				ResolveLive: domain.ResolveLiveVia(questions),
			},
		},
		Events: events,
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
		questions:     questions,
		txManager:     txm,
	}

	base.Hooks().OnBeforeCreate(svc.requireLiveQuestion)

	return svc
}

func (s *Service) requireLiveQuestion(ctx context.Context, r *Revision) error {
	_, err := s.questions.GetByID(ctx, r.QuestionID)
	return err
}

// ListByQuestion retrieves live revisions of one question.
func (s *Service) ListByQuestion(ctx context.Context, questionID id.ID, filter domain.ListFilter) (domain.ListResult[*Revision], error) {
	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return domain.ListResult[*Revision]{}, err
	}
	return s.repo.ListByQuestion(ctx, questionID, filter)
}

// Submit moves a draft revision to pending review.
func (s *Service) Submit(ctx context.Context, revisionID id.ID) (*Revision, error) {
	return s.applyTransition(ctx, revisionID, func(r *Revision) error {
		return r.Submit()
	})
}

// Approve accepts a pending revision and applies its content to the question
// in the same transaction.
func (s *Service) Approve(ctx context.Context, revisionID id.ID, note *string) (*Revision, error) {
	reviewer := security.GetActorID(ctx)

	var rev *Revision
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		rev, err = s.applyTransition(ctx, revisionID, func(r *Revision) error {
			return r.Approve(reviewer, note, time.Now().UTC())
		})
		if err != nil {
			return err
		}

		q, err := s.questions.GetByID(ctx, rev.QuestionID)
		if err != nil {
			return err
		}
		q.Prompt = rev.Prompt
		q.Answer = rev.Answer
		return s.questions.Update(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

// Reject refuses a pending revision.
func (s *Service) Reject(ctx context.Context, revisionID id.ID, note *string) (*Revision, error) {
	reviewer := security.GetActorID(ctx)
	return s.applyTransition(ctx, revisionID, func(r *Revision) error {
		return r.Reject(reviewer, note, time.Now().UTC())
	})
}

// Reopen returns a rejected revision to draft.
func (s *Service) Reopen(ctx context.Context, revisionID id.ID) (*Revision, error) {
	return s.applyTransition(ctx, revisionID, func(r *Revision) error {
		return r.Reopen()
	})
}

func (s *Service) applyTransition(ctx context.Context, revisionID id.ID, mutate func(*Revision) error) (*Revision, error) {
	var rev *Revision
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		rev, err = s.GetByID(ctx, revisionID)
		if err != nil {
			return err
		}
		if err := mutate(rev); err != nil {
			return err
		}
		return s.repo.Update(ctx, rev)
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}
