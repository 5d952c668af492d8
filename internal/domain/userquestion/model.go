// Package userquestion provides the per-user spaced-repetition scheduling
// state for one question.
package userquestion

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/entity"
	"quizbank/internal/core/id"
)

// UserQuestion is the scheduling state linking one user to one question.
// It has two restore parents (user and question) and (user_id, question_id)
// is unique among live rows.
type UserQuestion struct {
	entity.Base

	UserID     id.ID `db:"user_id" json:"userId"`
	QuestionID id.ID `db:"question_id" json:"questionId"`

	// EaseFactor is the SM-2 ease factor, floored at 1.30. Stored as
	// numeric(4,2); decimal arithmetic keeps repeated updates exact.
	EaseFactor   decimal.Decimal `db:"ease_factor" json:"easeFactor"`
	IntervalDays int             `db:"interval_days" json:"intervalDays"`
	Repetitions  int             `db:"repetitions" json:"repetitions"`
	DueAt        time.Time       `db:"due_at" json:"dueAt"`
	LastGrade    *int            `db:"last_grade" json:"lastGrade,omitempty"`
}

// New creates scheduling state for a question the user has not seen yet:
// due immediately, default ease.
func New(userID, questionID id.ID) *UserQuestion {
	return &UserQuestion{
		Base:       entity.NewBase(),
		UserID:     userID,
		QuestionID: questionID,
		EaseFactor: DefaultEase,
		DueAt:      time.Now().UTC(),
	}
}

// Validate implements entity.Validatable.
func (uq *UserQuestion) Validate(_ context.Context) error {
	if id.IsNil(uq.UserID) {
		return apperror.NewValidation("user is required").WithDetail("field", "userId")
	}
	if id.IsNil(uq.QuestionID) {
		return apperror.NewValidation("question is required").WithDetail("field", "questionId")
	}
	if uq.EaseFactor.LessThan(MinEase) {
		return apperror.NewValidation("ease factor below minimum").
			WithDetail("field", "easeFactor").
			WithDetail("value", uq.EaseFactor.String())
	}
	return nil
}

// IsDue reports whether the question is scheduled for review at now.
func (uq *UserQuestion) IsDue(now time.Time) bool {
	return !uq.DueAt.After(now)
}
