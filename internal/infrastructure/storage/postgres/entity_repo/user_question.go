package entity_repo

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"quizbank/internal/core/id"
	"quizbank/internal/domain/userquestion"
	"quizbank/internal/infrastructure/storage/postgres"
)

// UserQuestionRepo implements userquestion.Repository.
type UserQuestionRepo struct {
	*postgres.BaseRepo[*userquestion.UserQuestion]
}

var _ userquestion.Repository = (*UserQuestionRepo)(nil)

func NewUserQuestionRepo(txm *postgres.TxManager) *UserQuestionRepo {
	return &UserQuestionRepo{
		BaseRepo: postgres.NewBaseRepo(
			txm,
			"user_questions",
			nil,
			func() *userquestion.UserQuestion { return &userquestion.UserQuestion{} },
		),
	}
}

// GetByUserAndQuestion retrieves the live state for one (user, question) pair.
func (r *UserQuestionRepo) GetByUserAndQuestion(ctx context.Context, userID, questionID id.ID) (*userquestion.UserQuestion, error) {
	q := r.LiveSelect().
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"question_id": questionID}).
		Limit(1)
	return r.FindOne(ctx, q)
}

// ListDue retrieves live states due at or before now, soonest first.
func (r *UserQuestionRepo) ListDue(ctx context.Context, userID id.ID, now time.Time, limit int) ([]*userquestion.UserQuestion, error) {
	q := r.LiveSelect().
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.LtOrEq{"due_at": now}).
		OrderBy("due_at ASC").
		Limit(uint64(limit))
	return r.FindMany(ctx, q)
}
