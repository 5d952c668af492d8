package practice

import (
	"context"
	"time"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
	"quizbank/internal/core/tx"
	"quizbank/internal/domain/question"
	"quizbank/internal/domain/userquestion"
)

// QueueItem pairs a due scheduling state with its question content.
type QueueItem struct {
	State    *userquestion.UserQuestion `json:"state"`
	Question *question.Question         `json:"question"`
}

// Service drives a study session: builds the due queue and records answers.
type Service struct {
	logs      Repository
	states    *userquestion.Service
	questions question.Repository
	txManager tx.Manager
}

func NewService(logs Repository, states *userquestion.Service, questions question.Repository, txm tx.Manager) *Service {
	return &Service{
		logs:      logs,
		states:    states,
		questions: questions,
		txManager: txm,
	}
}

// Queue returns the user's due questions, soonest first. States whose
// question has been soft-deleted since scheduling are skipped rather than
// surfaced as errors.
func (s *Service) Queue(ctx context.Context, userID id.ID, limit int) ([]QueueItem, error) {
	states, err := s.states.ListDue(ctx, userID, time.Now().UTC(), limit)
	if err != nil {
		return nil, err
	}

	items := make([]QueueItem, 0, len(states))
	for _, st := range states {
		q, err := s.questions.GetByID(ctx, st.QuestionID)
		if err != nil {
			if apperror.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		items = append(items, QueueItem{State: st, Question: q})
	}
	return items, nil
}

// Answer records one graded attempt: appends the practice log and advances
// the scheduling state, atomically.
func (s *Service) Answer(ctx context.Context, userID, questionID id.ID, grade int, durationMs int64) (*userquestion.UserQuestion, error) {
	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var state *userquestion.UserQuestion

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		state, err = s.states.GetOrCreate(ctx, userID, questionID)
		if err != nil {
			return err
		}
		if err := state.Apply(grade, now); err != nil {
			return err
		}
		if err := s.states.Update(ctx, state); err != nil {
			return err
		}
		return s.logs.Insert(ctx, &Log{
			ID:         id.New(),
			UserID:     userID,
			QuestionID: questionID,
			Grade:      grade,
			DurationMs: durationMs,
			AnsweredAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// History returns the user's attempts, newest first.
func (s *Service) History(ctx context.Context, userID id.ID, limit, offset int) ([]*Log, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.logs.ListByUser(ctx, userID, limit, offset)
}
