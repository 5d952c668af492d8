package audit

import (
	"context"
	"fmt"
	"time"

	"quizbank/internal/core/id"
	"quizbank/internal/lifecycle"
)

// Repository is the storage contract for the event log.
type Repository interface {
	// Insert appends one event. Honors a transaction travelling in ctx.
	Insert(ctx context.Context, event *Event) error

	// ListByEntity returns events for one entity, newest first.
	ListByEntity(ctx context.Context, entityType string, entityID id.ID, limit, offset int) ([]*Event, error)
}

// Service writes and reads lifecycle audit events.
// It satisfies lifecycle.EventRecorder so entity services and the restore
// engine can append without depending on this package's types.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Append records one lifecycle transition.
// When called inside a transaction the event commits or rolls back with it.
// The restore engine appends RESTORE_BLOCKED on a detached context so those
// events survive the rollback of the restore they refused, and treats a
// failed RESTORED append as non-fatal to the committed restore.
func (s *Service) Append(ctx context.Context, entityType string, entityID id.ID, action lifecycle.Action, actorID *id.ID, metadata map[string]any) error {
	raw, err := encodeMetadata(metadata)
	if err != nil {
		return err
	}

	event := &Event{
		ID:          id.New(),
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		ActorID:     actorID,
		Metadata:    metadata,
		MetadataRaw: raw,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("insert %s event for %s %s: %w", action, entityType, entityID, err)
	}
	return nil
}

// FindByEntity returns the audit trail for one entity, newest first,
// with metadata decompressed.
func (s *Service) FindByEntity(ctx context.Context, entityType string, entityID id.ID, limit, offset int) ([]*Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	events, err := s.repo.ListByEntity(ctx, entityType, entityID, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		meta, err := decodeMetadata(ev.MetadataRaw)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", ev.ID, err)
		}
		ev.Metadata = meta
	}
	return events, nil
}

var _ lifecycle.EventRecorder = (*Service)(nil)
