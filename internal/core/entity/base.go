// Package entity provides base types for all domain entities.
package entity

import (
	"context"
	"time"

	"quizbank/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Base contains common fields for all soft-deletable entities.
//
// Deletion state invariant: DeletedAt and DeletedBy are either both nil
// (live row) or both set (deleted row). A live row never carries a deleter.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// CreatedAt / UpdatedAt are audit timestamps managed by the service layer
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// DeletedAt is nil while the row is live; set when soft-deleted.
	// Rows with DeletedAt set are excluded from default queries.
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`

	// DeletedBy records the actor that performed the soft delete.
	// Set only while DeletedAt is set.
	DeletedBy *id.ID `db:"deleted_by" json:"deletedBy,omitempty"`
}

// NewBase creates a new Base with generated ID and timestamps.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID returns the primary key.
func (b *Base) GetID() id.ID {
	return b.ID
}

// IsDeleted reports whether the entity is soft-deleted.
func (b *Base) IsDeleted() bool {
	return b.DeletedAt != nil
}

// MarkDeleted stamps the deletion timestamp and actor.
func (b *Base) MarkDeleted(actor id.ID, at time.Time) {
	b.DeletedAt = &at
	b.DeletedBy = &actor
}

// ClearDeleted reinstates the entity to live state.
// Both fields are cleared together to preserve the deletion invariant.
func (b *Base) ClearDeleted() {
	b.DeletedAt = nil
	b.DeletedBy = nil
}

// Touch updates UpdatedAt and increments version (optimistic locking).
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
	b.Version++
}

// SetVersion updates the version number (used by repository after sync).
func (b *Base) SetVersion(v int) {
	b.Version = v
}
