// Package lifecycle implements the soft-delete / restore integrity engine.
//
// Entities are logically deleted (deleted_at + deleted_by stamped) rather than
// physically removed, and may later be restored. Restore is gated by two kinds
// of declarative checks interpreted by one generic algorithm:
//
//   - parent-liveness: every declared parent must itself be live, otherwise the
//     restore would resurrect a dangling reference invisible to normal queries;
//   - live-row uniqueness: the restored row must not collide with an already
//     live row under any constraint that the schema scopes to live rows
//     (partial unique indexes on ... WHERE deleted_at IS NULL).
//
// The checks here are advisory: they produce precise, typed errors in the
// common case, but the authoritative enforcement is the schema's partial
// unique index. A storage-level unique violation raised during commit is
// mapped to the same typed conflict error.
package lifecycle

import (
	"context"
	"time"

	"quizbank/internal/core/id"
)

// SoftDeletable is the capability contract every managed entity satisfies.
// entity.Base provides the canonical implementation.
//
// Invariant: a live entity carries neither a deletion timestamp nor a deleter;
// a deleted entity carries both.
type SoftDeletable interface {
	GetID() id.ID
	IsDeleted() bool
	MarkDeleted(actor id.ID, at time.Time)
	ClearDeleted()
}

// ParentRef declares a foreign-key relation that must be checked before the
// child can be restored. Multiple parents may be declared per entity.
type ParentRef[T SoftDeletable] struct {
	// Label names the relation in errors and audit events ("topic", "user").
	Label string

	// ParentID extracts the child's foreign-key value for this relation.
	// A nil result means the relation is optional for this row and is skipped.
	ParentID func(child T) *id.ID

	// ResolveLive looks the parent up through the include-deleted path and
	// reports whether it exists and is currently live. A parent that is
	// absent entirely and a parent that is soft-deleted are both not live;
	// either blocks the restore. Infrastructure errors propagate unchanged.
	ResolveLive func(ctx context.Context, parentID id.ID) (bool, error)
}

// UniqueConstraint declares a set of columns that must be unique among live
// rows only. Fields name db columns; values are read from the entity being
// restored via its db struct tags and compared against live rows.
type UniqueConstraint struct {
	// Label names the constraint in errors ("slug", "user_id+question_id").
	Label string

	// Fields are the db column names forming the unique tuple.
	Fields []string
}

// Store is the transactional data-access contract the engine requires.
// The postgres base repository implements it; tests use an in-memory fake.
//
// All methods honor a transaction travelling in ctx (tx.Manager contract),
// so an engine call composes into a larger caller-owned transaction.
type Store[T SoftDeletable] interface {
	// GetLive fetches by id through the live-row path.
	// Returns apperror NotFound if no live row has that id.
	GetLive(ctx context.Context, entityID id.ID) (T, error)

	// GetIncludingDeleted fetches by id regardless of deletion state.
	// Returns apperror NotFound only if the row is absent entirely.
	GetIncludingDeleted(ctx context.Context, entityID id.ID) (T, error)

	// SetDeleted stamps deleted_at and deleted_by as one atomic update.
	// Returns apperror NotFound if no live row has that id.
	SetDeleted(ctx context.Context, entityID id.ID, actor id.ID, at time.Time) error

	// ClearDeleted clears deleted_at and deleted_by as one atomic update.
	// A unique violation raised by the schema's live-scoped index must be
	// surfaced as an apperror with code DUPLICATE_ENTRY.
	ClearDeleted(ctx context.Context, entityID id.ID) error

	// HasLiveConflict reports whether any live row other than excludeID
	// matches all given column values. Deleted rows never conflict.
	HasLiveConflict(ctx context.Context, values map[string]any, excludeID id.ID) (bool, error)
}

// Action is a lifecycle audit action.
type Action string

const (
	ActionDeleted        Action = "DELETED"
	ActionRestored       Action = "RESTORED"
	ActionForceDeleted   Action = "FORCE_DELETED"
	ActionRestoreBlocked Action = "RESTORE_BLOCKED"
)

// EventRecorder is the optional audit sink. The engine never lets a failed
// append mask or roll back a committed restore; append failures are logged
// and the restore stands. RESTORE_BLOCKED appends run on a tx.Detach'ed
// context, outside the transaction the blocked restore rolls back, so the
// trail of refused restores persists.
type EventRecorder interface {
	Append(ctx context.Context, entityType string, entityID id.ID, action Action, actorID *id.ID, metadata map[string]any) error
}
