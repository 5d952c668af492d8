package security

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/cel-go/cel"

	"quizbank/internal/core/apperror"
	appctx "quizbank/internal/core/context"
)

// DefaultAdminPolicy gates the admin surface (find-with-deleted, restore,
// audit history): admins pass, everyone else needs an explicit permission
// matching the attempted action.
const DefaultAdminPolicy = `is_admin || action in permissions`

// Policy is a compiled CEL access rule evaluated per request.
//
// The expression sees:
//
//	user_id     string  - authenticated user id
//	role        string  - user role (admin|editor|learner)
//	is_admin    bool    - admin shortcut
//	permissions list    - granted permission strings
//	action      string  - attempted action, e.g. "content:restore"
//	entity      string  - target entity type, e.g. "topic"
//
// Operators and hosts load their own expressions from configuration; the
// engine only requires that the expression evaluates to bool.
type Policy struct {
	expr    string
	program cel.Program
}

// NewPolicy compiles a CEL expression into an evaluable Policy.
func NewPolicy(expr string) (*Policy, error) {
	env, err := cel.NewEnv(
		cel.Variable("user_id", cel.StringType),
		cel.Variable("role", cel.StringType),
		cel.Variable("is_admin", cel.BoolType),
		cel.Variable("permissions", cel.ListType(cel.StringType)),
		cel.Variable("action", cel.StringType),
		cel.Variable("entity", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL env: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile policy %q: %w", expr, iss.Err())
	}
	if !reflect.DeepEqual(ast.OutputType(), cel.BoolType) {
		return nil, fmt.Errorf("policy %q must evaluate to bool, got %v", expr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build policy program: %w", err)
	}

	return &Policy{expr: expr, program: prg}, nil
}

// MustNewPolicy compiles an expression, panicking on error.
// Use only for compile-time constants and tests.
func MustNewPolicy(expr string) *Policy {
	p, err := NewPolicy(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Expr returns the source expression (for logging and diagnostics).
func (p *Policy) Expr() string {
	return p.expr
}

// Allows evaluates the policy for the authenticated user in ctx.
func (p *Policy) Allows(ctx context.Context, action, entity string) (bool, error) {
	user := appctx.GetUser(ctx)
	if user == nil {
		return false, nil
	}

	perms := user.Permissions
	if perms == nil {
		perms = []string{}
	}

	out, _, err := p.program.Eval(map[string]any{
		"user_id":     user.UserID,
		"role":        user.Role,
		"is_admin":    user.IsAdmin,
		"permissions": perms,
		"action":      action,
		"entity":      entity,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate policy %q: %w", p.expr, err)
	}

	allowed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("policy %q returned non-bool %T", p.expr, out.Value())
	}
	return allowed, nil
}

// Require evaluates the policy and converts a denial into a typed error.
func (p *Policy) Require(ctx context.Context, action, entity string) error {
	allowed, err := p.Allows(ctx, action, entity)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if !allowed {
		return apperror.NewForbidden("insufficient permissions").
			WithDetail("action", action).
			WithDetail("entity", entity)
	}
	return nil
}
