// Package user provides the User account entity.
package user

import (
	"context"
	"regexp"
	"strings"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/entity"
)

// Role defines the access level of an account.
type Role string

const (
	RoleLearner Role = "learner"
	RoleEditor  Role = "editor"
	RoleAdmin   Role = "admin"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User is an account that authors questions and practices them.
// Email is unique among live users only; a deleted user's email may be
// re-registered, which is what makes restoring the old account conditional.
type User struct {
	entity.Base

	Email        string `db:"email" json:"email"`
	DisplayName  string `db:"display_name" json:"displayName"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         Role   `db:"role" json:"role"`

	// Permissions are extra grants evaluated by the access policy on top
	// of the role ("question:force_delete", "revision:approve").
	Permissions []string `db:"permissions" json:"permissions,omitempty"`

	IsActive bool `db:"is_active" json:"isActive"`
}

// New creates a User with defaults applied.
func New(email, displayName string) *User {
	return &User{
		Base:        entity.NewBase(),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		DisplayName: displayName,
		Role:        RoleLearner,
		IsActive:    true,
	}
}

// Validate implements entity.Validatable.
func (u *User) Validate(_ context.Context) error {
	if u.Email == "" {
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if !emailRe.MatchString(u.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email").
			WithDetail("value", u.Email)
	}
	if u.DisplayName == "" {
		return apperror.NewValidation("display name is required").WithDetail("field", "displayName")
	}
	if !isValidRole(u.Role) {
		return apperror.NewValidation("invalid role").
			WithDetail("field", "role").
			WithDetail("value", string(u.Role))
	}
	return nil
}

// IsAdmin reports whether the account has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func isValidRole(r Role) bool {
	switch r {
	case RoleLearner, RoleEditor, RoleAdmin:
		return true
	}
	return false
}
