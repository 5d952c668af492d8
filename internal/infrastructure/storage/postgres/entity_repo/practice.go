package entity_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"quizbank/internal/core/id"
	"quizbank/internal/domain/practice"
	"quizbank/internal/infrastructure/storage/postgres"
)

// PracticeRepo implements practice.Repository. The table is append-only;
// there is no update or delete path.
type PracticeRepo struct {
	txm *postgres.TxManager
}

var _ practice.Repository = (*PracticeRepo)(nil)

func NewPracticeRepo(txm *postgres.TxManager) *PracticeRepo {
	return &PracticeRepo{txm: txm}
}

func (r *PracticeRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Insert appends one attempt.
func (r *PracticeRepo) Insert(ctx context.Context, log *practice.Log) error {
	q := r.builder().
		Insert("practice_logs").
		SetMap(postgres.StructToMap(log))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert practice log: %w", err)
	}
	return nil
}

// ListByUser returns the user's attempts, newest first.
func (r *PracticeRepo) ListByUser(ctx context.Context, userID id.ID, limit, offset int) ([]*practice.Log, error) {
	q := r.builder().
		Select(postgres.ExtractDBColumns[*practice.Log]()...).
		From("practice_logs").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("answered_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var logs []*practice.Log
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &logs, sql, args...); err != nil {
		return nil, fmt.Errorf("list practice logs: %w", err)
	}
	return logs, nil
}
