package lifecycle

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
	"quizbank/internal/core/tx"
	"quizbank/pkg/logger"
)

// Engine executes soft-delete and restore for one entity type, interpreting
// the declared parent and uniqueness descriptors generically.
type Engine[T SoftDeletable] struct {
	store      Store[T]
	entityType string
	parents    []ParentRef[T]
	uniques    []UniqueConstraint
	events     EventRecorder // optional
}

// Config declares an entity type to the engine.
type Config[T SoftDeletable] struct {
	Store      Store[T]
	EntityType string
	Parents    []ParentRef[T]
	Uniques    []UniqueConstraint

	// Events is optional; without it restores succeed silently.
	Events EventRecorder
}

// NewEngine creates an engine for one entity type.
func NewEngine[T SoftDeletable](cfg Config[T]) *Engine[T] {
	return &Engine[T]{
		store:      cfg.Store,
		entityType: cfg.EntityType,
		parents:    cfg.Parents,
		uniques:    cfg.Uniques,
		events:     cfg.Events,
	}
}

// EntityType returns the label used in errors and audit events.
func (e *Engine[T]) EntityType() string {
	return e.entityType
}

// SoftDelete marks a live entity logically deleted, stamping the actor.
//
// The actor is mandatory: deleted_at and deleted_by are stamped together,
// and one never appears without the other. The target is addressed through
// the live-row path only: deleting an already-deleted row reports NotFound
// rather than double-marking it. Both fields reach their end state in one
// atomic update, so concurrent readers never observe a half-stamped row.
func (e *Engine[T]) SoftDelete(ctx context.Context, entityID, actorID id.ID) error {
	if id.IsNil(actorID) {
		return apperror.NewValidation("soft delete requires an acting user").
			WithDetail("entity_type", e.entityType)
	}
	if _, err := e.store.GetLive(ctx, entityID); err != nil {
		return err
	}
	if err := e.store.SetDeleted(ctx, entityID, actorID, time.Now().UTC()); err != nil {
		return err
	}
	return nil
}

// Restore reinstates a logically deleted entity, gated by the declared
// parent-liveness and live-row uniqueness checks, in that order.
//
// Parent checks run first: a dead parent is a structural blocker the caller
// cannot resolve by renaming, so it surfaces before any fixable naming
// conflict. On success the entity is re-read through the live-row path so the
// caller observes the authoritative persisted state, not the in-memory copy
// used for the checks.
func (e *Engine[T]) Restore(ctx context.Context, entityID, actorID id.ID) (T, error) {
	var zero T

	ent, err := e.store.GetIncludingDeleted(ctx, entityID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return zero, apperror.NewDeletedNotFound(e.entityType, entityID.String())
		}
		return zero, err
	}
	if !ent.IsDeleted() {
		// A live row with this id is not a valid restore target.
		return zero, apperror.NewDeletedNotFound(e.entityType, entityID.String())
	}

	// 1. Parent-liveness checks.
	for _, parent := range e.parents {
		pid := parent.ParentID(ent)
		if pid == nil {
			continue // optional relation
		}
		live, err := parent.ResolveLive(ctx, *pid)
		if err != nil {
			return zero, err
		}
		if !live {
			e.recordBlocked(ctx, entityID, actorID, map[string]any{
				"reason":    "dead_parent",
				"parent":    parent.Label,
				"parent_id": pid.String(),
			})
			return zero, apperror.NewRestoreBlocked(e.entityType, entityID.String(), parent.Label, pid.String())
		}
	}

	// 2. Live-row uniqueness checks (advisory; the schema's partial unique
	// index remains authoritative, see ClearDeleted below).
	for _, constraint := range e.uniques {
		values, err := FieldValues(ent, constraint.Fields)
		if err != nil {
			return zero, apperror.NewInternal(err).WithDetail("constraint", constraint.Label)
		}
		conflict, err := e.store.HasLiveConflict(ctx, values, entityID)
		if err != nil {
			return zero, err
		}
		if conflict {
			desc := describeValues(values)
			e.recordBlocked(ctx, entityID, actorID, map[string]any{
				"reason":     "active_uniqueness_conflict",
				"constraint": constraint.Label,
				"value":      desc,
			})
			return zero, apperror.NewDomainConflict(e.entityType, entityID.String(), constraint.Label, desc)
		}
	}

	// 3. Commit: clear deleted_at and deleted_by atomically.
	if err := e.store.ClearDeleted(ctx, entityID); err != nil {
		if apperror.IsDuplicate(err) {
			// The advisory check passed but the schema's live-scoped unique
			// index fired: a concurrent restore or create won the race.
			return zero, apperror.NewDomainConflict(e.entityType, entityID.String(), "unique constraint", "").
				WithCause(err)
		}
		return zero, err
	}

	// 4. Audit, best-effort relative to the commit: a failed append must not
	// silently mask a successful restore, but must not undo it either.
	if e.events != nil {
		restoredAt := time.Now().UTC()
		err := e.events.Append(ctx, e.entityType, entityID, ActionRestored, &actorID, map[string]any{
			"restored_at": restoredAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			logger.Error(ctx, "restore committed but audit append failed",
				"entity_type", e.entityType,
				"entity_id", entityID.String(),
				"error", err,
			)
		}
	}

	// 5. Return the authoritative persisted state.
	return e.store.GetLive(ctx, entityID)
}

// recordBlocked appends a RESTORE_BLOCKED event, best-effort.
//
// The blocked restore's transaction is about to roll back, taking any write
// made through it along. The append runs on a detached context so the event
// commits on its own and the trail survives the rollback it describes.
func (e *Engine[T]) recordBlocked(ctx context.Context, entityID, actorID id.ID, metadata map[string]any) {
	if e.events == nil {
		return
	}
	ctx = tx.Detach(ctx)
	if err := e.events.Append(ctx, e.entityType, entityID, ActionRestoreBlocked, &actorID, metadata); err != nil {
		logger.Warn(ctx, "restore-blocked audit append failed",
			"entity_type", e.entityType,
			"entity_id", entityID.String(),
			"error", err,
		)
	}
}

// describeValues renders a constraint tuple for error details,
// with deterministic field order.
func describeValues(values map[string]any) string {
	if len(values) == 1 {
		for _, v := range values {
			return fmt.Sprintf("%v", v)
		}
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, values[k]))
	}
	return strings.Join(parts, ", ")
}
