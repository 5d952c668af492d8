// Package security provides authorization utilities: actor context propagation
// and CEL-based access policies for the admin surface.
package security

import (
	"context"

	"quizbank/internal/core/id"
)

type actorIDKey struct{}

// WithActorID adds the authenticated actor's ID to context.
// Used by middleware to propagate the actor through the request chain;
// the domain layer stamps deleted_by and audit events from it.
func WithActorID(ctx context.Context, actorID id.ID) context.Context {
	return context.WithValue(ctx, actorIDKey{}, actorID)
}

// GetActorID retrieves the actor ID from context.
// Returns id.Nil() if not found.
//
// Usage in domain layer:
//
//	actor := security.GetActorID(ctx)
//	if !id.IsNil(actor) {
//	    event.ActorID = &actor
//	}
func GetActorID(ctx context.Context) id.ID {
	if aid, ok := ctx.Value(actorIDKey{}).(id.ID); ok {
		return aid
	}
	return id.Nil()
}
