package domain

import (
	"context"
	"fmt"
	"time"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
	"quizbank/internal/core/security"
	"quizbank/internal/core/tx"
	"quizbank/internal/lifecycle"
)

// EntityService provides business logic common to all soft-deletable entities.
// Per-entity services embed it and register hooks for their specifics.
//
// Delete and Restore delegate to the lifecycle engine; both append a domain
// event, so the audit trail is symmetric for the two transitions.
type EntityService[T Entity] struct {
	repo       Repository[T]
	txManager  tx.Manager
	engine     *lifecycle.Engine[T]
	events     lifecycle.EventRecorder
	hooks      *HookRegistry[T]
	entityName string
}

// EntityServiceConfig configures the generic service.
type EntityServiceConfig[T Entity] struct {
	Repo       Repository[T]
	TxManager  tx.Manager
	EntityName string

	// Parents and Uniques are the integrity descriptors handed to the
	// restore engine.
	Parents []lifecycle.ParentRef[T]
	Uniques []lifecycle.UniqueConstraint

	// Events is the optional domain-event sink for delete/restore audit.
	Events lifecycle.EventRecorder
}

// NewEntityService creates the generic service and its restore engine.
func NewEntityService[T Entity](cfg EntityServiceConfig[T]) *EntityService[T] {
	return &EntityService[T]{
		repo:      cfg.Repo,
		txManager: cfg.TxManager,
		engine: lifecycle.NewEngine(lifecycle.Config[T]{
			Store:      cfg.Repo,
			EntityType: cfg.EntityName,
			Parents:    cfg.Parents,
			Uniques:    cfg.Uniques,
			Events:     cfg.Events,
		}),
		events:     cfg.Events,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *EntityService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *EntityService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *EntityService[T]) normalizeGetErr(err error, idOrKey any) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, idOrKey)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", idOrKey)
}

// Create creates a new entity.
func (s *EntityService[T]) Create(ctx context.Context, ent T) error {
	if err := ent.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeCreate, ent); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, ent); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.hooks.Run(ctx, AfterCreate, ent)
}

// GetByID retrieves a live entity by ID.
func (s *EntityService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	ent, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return ent, s.normalizeGetErr(err, entityID.String())
	}
	return ent, nil
}

// GetWithDeleted retrieves an entity regardless of deletion state.
// Admin surface only; handlers gate access before calling.
func (s *EntityService[T]) GetWithDeleted(ctx context.Context, entityID id.ID) (T, error) {
	ent, err := s.repo.GetIncludingDeleted(ctx, entityID)
	if err != nil {
		return ent, s.normalizeGetErr(err, entityID.String())
	}
	return ent, nil
}

// Update updates an existing entity.
func (s *EntityService[T]) Update(ctx context.Context, ent T) error {
	if err := ent.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeUpdate, ent); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, ent); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.hooks.Run(ctx, AfterUpdate, ent)
}

// Delete performs a soft delete stamped with the acting user and appends
// a DELETED domain event in the same transaction. The engine rejects an
// anonymous context: deleted_by is never left unstamped.
func (s *EntityService[T]) Delete(ctx context.Context, entityID id.ID) error {
	ent, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}

	if err := s.hooks.Run(ctx, BeforeDelete, ent); err != nil {
		return err
	}

	actorID := security.GetActorID(ctx)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.engine.SoftDelete(ctx, entityID, actorID); err != nil {
			return err
		}
		if s.events != nil {
			meta := map[string]any{"deleted_at": time.Now().UTC().Format(time.RFC3339Nano)}
			if err := s.events.Append(ctx, s.entityName, entityID, lifecycle.ActionDeleted, &actorID, meta); err != nil {
				return fmt.Errorf("append DELETED event for %s: %w", s.entityName, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.hooks.Run(ctx, AfterDelete, ent)
}

// Restore reinstates a soft-deleted entity via the lifecycle engine.
// The integrity checks, commit and audit run in one transaction; callers
// composing larger operations (cascade restores) wrap this in their own
// RunInTransaction, which the manager joins instead of nesting.
func (s *EntityService[T]) Restore(ctx context.Context, entityID id.ID) (T, error) {
	var restored T
	actorID := security.GetActorID(ctx)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		restored, err = s.engine.Restore(ctx, entityID, actorID)
		return err
	})
	if err != nil {
		return restored, err
	}

	if err := s.hooks.Run(ctx, AfterRestore, restored); err != nil {
		return restored, err
	}
	return restored, nil
}

// List retrieves entities with filtering.
func (s *EntityService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists checks if a live entity exists.
func (s *EntityService[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, entityID)
}
