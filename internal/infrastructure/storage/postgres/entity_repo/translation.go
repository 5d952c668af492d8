package entity_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"quizbank/internal/core/id"
	"quizbank/internal/domain/translation"
	"quizbank/internal/infrastructure/storage/postgres"
)

// TranslationRepo implements translation.Repository.
type TranslationRepo struct {
	*postgres.BaseRepo[*translation.Translation]
}

var _ translation.Repository = (*TranslationRepo)(nil)

func NewTranslationRepo(txm *postgres.TxManager) *TranslationRepo {
	return &TranslationRepo{
		BaseRepo: postgres.NewBaseRepo(
			txm,
			"translations",
			[]string{"prompt", "answer", "locale"},
			func() *translation.Translation { return &translation.Translation{} },
		),
	}
}

// ListByQuestion retrieves live translations of one question.
func (r *TranslationRepo) ListByQuestion(ctx context.Context, questionID id.ID) ([]*translation.Translation, error) {
	q := r.LiveSelect().
		Where(squirrel.Eq{"question_id": questionID}).
		OrderBy("locale ASC")
	return r.FindMany(ctx, q)
}
