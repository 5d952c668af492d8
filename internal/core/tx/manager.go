// Package tx provides transaction management abstractions.
// This package defines interfaces that decouple domain logic from specific
// database implementations, following the Dependency Inversion Principle.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
// Implementations handle BEGIN, COMMIT, ROLLBACK, and nested transaction support.
//
// Domain services depend on this interface, not concrete implementations.
// The actual implementation lives in infrastructure/storage/postgres.
//
// The active transaction travels in the context passed to fn. A caller that
// wants soft-delete, restore checks, the commit and the audit append in one
// atomic scope wraps them in a single RunInTransaction call; nested calls
// join the surrounding transaction instead of opening a new one.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	//
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transaction support.
// Use for queries that don't modify data (better performance, no locks).
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction.
	// Attempts to modify data will fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// The active transaction travels under a context key owned by this package,
// so domain code can detach from it without importing the database driver.

type txCtxKey struct{}

// WithTx stores the driver transaction in ctx. Called by Manager
// implementations when a transaction begins.
func WithTx(ctx context.Context, txn any) context.Context {
	return context.WithValue(ctx, txCtxKey{}, txn)
}

// FromContext returns the driver transaction stored in ctx, or nil.
func FromContext(ctx context.Context) any {
	return ctx.Value(txCtxKey{})
}

// Detach returns a context with no active transaction. Writes made through
// it commit on their own and survive a rollback of the surrounding
// transaction. Used for audit events that must outlive the failure they
// describe, such as a blocked restore.
func Detach(ctx context.Context) context.Context {
	return context.WithValue(ctx, txCtxKey{}, nil)
}
