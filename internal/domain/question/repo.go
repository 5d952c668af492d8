package question

import (
	"context"

	"quizbank/internal/core/id"
	"quizbank/internal/domain"
)

// Repository defines Question persistence.
type Repository interface {
	domain.Repository[*Question]

	// ListByTopic retrieves live questions of one topic.
	ListByTopic(ctx context.Context, topicID id.ID, filter domain.ListFilter) (domain.ListResult[*Question], error)

	// ListDeletedByTopic retrieves soft-deleted questions of one topic,
	// used by the cascade restore of a topic subtree.
	ListDeletedByTopic(ctx context.Context, topicID id.ID) ([]*Question, error)
}
