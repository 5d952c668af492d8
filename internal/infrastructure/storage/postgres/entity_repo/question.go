package entity_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"quizbank/internal/core/id"
	"quizbank/internal/domain"
	"quizbank/internal/domain/filter"
	"quizbank/internal/domain/question"
	"quizbank/internal/infrastructure/storage/postgres"
)

// QuestionRepo implements question.Repository.
type QuestionRepo struct {
	*postgres.BaseRepo[*question.Question]
}

var _ question.Repository = (*QuestionRepo)(nil)

func NewQuestionRepo(txm *postgres.TxManager) *QuestionRepo {
	return &QuestionRepo{
		BaseRepo: postgres.NewBaseRepo(
			txm,
			"questions",
			[]string{"prompt", "answer"},
			func() *question.Question { return &question.Question{} },
		),
	}
}

// ListByTopic retrieves live questions of one topic.
func (r *QuestionRepo) ListByTopic(ctx context.Context, topicID id.ID, flt domain.ListFilter) (domain.ListResult[*question.Question], error) {
	flt.AdvancedFilters = append(flt.AdvancedFilters, filter.Item{
		Field:    "topic_id",
		Operator: filter.Equal,
		Value:    topicID,
	})
	return r.List(ctx, flt)
}

// ListDeletedByTopic retrieves soft-deleted questions of one topic, oldest
// deletion first so cascade restores replay in deletion order.
func (r *QuestionRepo) ListDeletedByTopic(ctx context.Context, topicID id.ID) ([]*question.Question, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[*question.Question]()...).
		From(r.TableName()).
		Where(squirrel.Eq{"topic_id": topicID}).
		Where(squirrel.NotEq{"deleted_at": nil}).
		OrderBy("deleted_at ASC")
	return r.FindMany(ctx, q)
}
