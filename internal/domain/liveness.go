package domain

import (
	"context"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
)

// ResolveLiveVia adapts a repository's include-deleted path into the
// parent-liveness resolver shape the restore engine expects. An absent
// parent and a soft-deleted parent both resolve to not-live; only
// infrastructure errors propagate.
func ResolveLiveVia[T Entity](repo Repository[T]) func(ctx context.Context, parentID id.ID) (bool, error) {
	return func(ctx context.Context, parentID id.ID) (bool, error) {
		parent, err := repo.GetIncludingDeleted(ctx, parentID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		return !parent.IsDeleted(), nil
	}
}
