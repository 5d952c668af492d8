package entity_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"quizbank/internal/core/id"
	"quizbank/internal/domain/audit"
	"quizbank/internal/infrastructure/storage/postgres"
)

// EventRepo implements audit.Repository over the append-only domain_events
// table. Rows are only inserted; force-deleting an entity leaves its trail.
type EventRepo struct {
	txm *postgres.TxManager
}

var _ audit.Repository = (*EventRepo)(nil)

func NewEventRepo(txm *postgres.TxManager) *EventRepo {
	return &EventRepo{txm: txm}
}

func (r *EventRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Insert appends one event.
func (r *EventRepo) Insert(ctx context.Context, event *audit.Event) error {
	q := r.builder().
		Insert("domain_events").
		SetMap(postgres.StructToMap(event))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert domain event: %w", err)
	}
	return nil
}

// ListByEntity returns events for one entity, newest first.
func (r *EventRepo) ListByEntity(ctx context.Context, entityType string, entityID id.ID, limit, offset int) ([]*audit.Event, error) {
	q := r.builder().
		Select(postgres.ExtractDBColumns[*audit.Event]()...).
		From("domain_events").
		Where(squirrel.Eq{"entity_type": entityType}).
		Where(squirrel.Eq{"entity_id": entityID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var events []*audit.Event
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &events, sql, args...); err != nil {
		return nil, fmt.Errorf("list domain events: %w", err)
	}
	return events, nil
}
