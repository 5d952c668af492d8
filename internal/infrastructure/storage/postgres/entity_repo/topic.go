package entity_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"quizbank/internal/domain/topic"
	"quizbank/internal/infrastructure/storage/postgres"
)

// TopicRepo implements topic.Repository.
type TopicRepo struct {
	*postgres.BaseRepo[*topic.Topic]
}

var _ topic.Repository = (*TopicRepo)(nil)

func NewTopicRepo(txm *postgres.TxManager) *TopicRepo {
	return &TopicRepo{
		BaseRepo: postgres.NewBaseRepo(
			txm,
			"topics",
			[]string{"slug", "title"},
			func() *topic.Topic { return &topic.Topic{} },
		),
	}
}

// GetBySlug retrieves a live topic by slug.
func (r *TopicRepo) GetBySlug(ctx context.Context, slug string) (*topic.Topic, error) {
	q := r.LiveSelect().
		Where(squirrel.Eq{"slug": slug}).
		Limit(1)
	return r.FindOne(ctx, q)
}
