// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"

	"quizbank/internal/core/entity"
	"quizbank/internal/core/id"
	"quizbank/internal/domain/filter"
	"quizbank/internal/lifecycle"
)

// --- Filter & Pagination ---

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// Search performs case-insensitive substring search on searchable fields
	Search string

	// IDs filters by specific IDs
	IDs []id.ID

	// IncludeDeleted includes soft-deleted records.
	// Only the admin surface may set this; handlers enforce it.
	IncludeDeleted bool

	// AdvancedFilters are arbitrary column conditions
	AdvancedFilters []filter.Item

	// OrderBy specifies sorting (e.g., "title", "-created_at")
	OrderBy string

	// Pagination
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:   50,
		OrderBy: "-created_at",
	}
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Repository Interfaces ---

// Entity is the constraint every managed domain entity satisfies:
// self-validating and soft-deletable.
type Entity interface {
	entity.Validatable
	lifecycle.SoftDeletable
}

// Repository defines CRUD operations for soft-deletable entities.
// Implementations also satisfy lifecycle.Store for the restore engine.
type Repository[T Entity] interface {
	lifecycle.Store[T]

	// Create inserts a new entity
	Create(ctx context.Context, entity T) error

	// GetByID retrieves a live entity by ID
	GetByID(ctx context.Context, id id.ID) (T, error)

	// Update modifies an existing entity (with optimistic locking)
	Update(ctx context.Context, entity T) error

	// List retrieves entities with filtering and pagination
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)

	// Exists checks if a live entity with given ID exists
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// --- Hooks ---

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeCreate  HookEvent = "before_create"
	AfterCreate   HookEvent = "after_create"
	BeforeUpdate  HookEvent = "before_update"
	AfterUpdate   HookEvent = "after_update"
	BeforeDelete  HookEvent = "before_delete"
	AfterDelete   HookEvent = "after_delete"
	AfterRestore  HookEvent = "after_restore"
	BeforeRestore HookEvent = "before_restore"
)

// Hook is a function that runs at specific lifecycle points.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the specified event.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, entity T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// OnBeforeCreate registers a hook to run before create.
func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) {
	r.On(BeforeCreate, hook)
}

// OnBeforeUpdate registers a hook to run before update.
func (r *HookRegistry[T]) OnBeforeUpdate(hook Hook[T]) {
	r.On(BeforeUpdate, hook)
}

// OnBeforeDelete registers a hook to run before delete.
func (r *HookRegistry[T]) OnBeforeDelete(hook Hook[T]) {
	r.On(BeforeDelete, hook)
}

// OnAfterRestore registers a hook to run after a successful restore.
func (r *HookRegistry[T]) OnAfterRestore(hook Hook[T]) {
	r.On(AfterRestore, hook)
}
