// Package audit records lifecycle transitions as append-only domain events.
package audit

import (
	"time"

	"quizbank/internal/core/id"
	"quizbank/internal/lifecycle"
)

// Event is one row of the append-only lifecycle audit log.
// Events are never updated or deleted; force-delete of the subject entity
// leaves its events in place.
type Event struct {
	ID         id.ID            `db:"id" json:"id"`
	EntityType string           `db:"entity_type" json:"entityType"`
	EntityID   id.ID            `db:"entity_id" json:"entityId"`
	Action     lifecycle.Action `db:"action" json:"action"`

	// ActorID is nil for system-initiated transitions (maintenance jobs,
	// migrations); otherwise the user who performed the action.
	ActorID *id.ID `db:"actor_id" json:"actorId,omitempty"`

	// Metadata is the opaque event payload, zstd-compressed JSON on the wire.
	Metadata map[string]any `db:"-" json:"metadata,omitempty"`

	// MetadataRaw is the compressed representation persisted in bytea.
	MetadataRaw []byte `db:"metadata" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
