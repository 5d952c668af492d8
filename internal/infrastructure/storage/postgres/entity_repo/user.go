// Package entity_repo provides PostgreSQL implementations of the domain
// repositories.
package entity_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"quizbank/internal/domain/user"
	"quizbank/internal/infrastructure/storage/postgres"
)

// UserRepo implements user.Repository.
type UserRepo struct {
	*postgres.BaseRepo[*user.User]
}

var _ user.Repository = (*UserRepo)(nil)

func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{
		BaseRepo: postgres.NewBaseRepo(
			txm,
			"users",
			[]string{"email", "display_name"},
			func() *user.User { return &user.User{} },
		),
	}
}

// GetByEmail retrieves a live user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	q := r.LiveSelect().
		Where(squirrel.Eq{"email": email}).
		Limit(1)
	return r.FindOne(ctx, q)
}
