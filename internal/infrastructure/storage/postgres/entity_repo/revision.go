package entity_repo

import (
	"context"

	"quizbank/internal/core/id"
	"quizbank/internal/domain"
	"quizbank/internal/domain/filter"
	"quizbank/internal/domain/revision"
	"quizbank/internal/infrastructure/storage/postgres"
)

// RevisionRepo implements revision.Repository.
type RevisionRepo struct {
	*postgres.BaseRepo[*revision.Revision]
}

var _ revision.Repository = (*RevisionRepo)(nil)

func NewRevisionRepo(txm *postgres.TxManager) *RevisionRepo {
	return &RevisionRepo{
		BaseRepo: postgres.NewBaseRepo(
			txm,
			"revisions",
			[]string{"prompt", "answer"},
			func() *revision.Revision { return &revision.Revision{} },
		),
	}
}

// ListByQuestion retrieves live revisions of one question.
func (r *RevisionRepo) ListByQuestion(ctx context.Context, questionID id.ID, flt domain.ListFilter) (domain.ListResult[*revision.Revision], error) {
	flt.AdvancedFilters = append(flt.AdvancedFilters, filter.Item{
		Field:    "question_id",
		Operator: filter.Equal,
		Value:    questionID,
	})
	return r.List(ctx, flt)
}
