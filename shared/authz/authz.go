// Package authz turns the identity placed in the request context by the auth middleware
// into an explicit caller value with capability checks.
package authz

import (
	"context"
	"slices"
	"stayledger/shared/constant"
	"stayledger/shared/failure"
)

type Caller struct {
	UserID string
	Email  string
	Role   string
}

func FromContext(ctx context.Context) Caller {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Caller{
		UserID: userID,
		Email:  email,
		Role:   role,
	}
}

// WithCaller stores the caller the same way the auth middleware does.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, caller.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, caller.Email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, caller.Role)
}

func (c Caller) Authenticated() bool {
	return c.UserID != ""
}

// Is reports whether the caller holds one of roles. Superadmin satisfies admin.
func (c Caller) Is(roles ...string) bool {
	if !c.Authenticated() {
		return false
	}

	if c.Role == constant.RoleSuperAdmin && slices.Contains(roles, constant.RoleAdmin) {
		return true
	}

	return slices.Contains(roles, c.Role)
}

func (c Caller) IsAdmin() bool {
	return c.Is(constant.RoleAdmin)
}

// Owns reports whether the caller may act on a resource owned by userID.
func (c Caller) Owns(userID string) bool {
	return c.Authenticated() && c.UserID == userID
}

// Require returns the caller when authenticated and, if roles are given, holding one of them.
func Require(ctx context.Context, roles ...string) (Caller, error) {
	caller := FromContext(ctx)

	if !caller.Authenticated() {
		return caller, failure.Unauthorized("authentication required") //nolint:wrapcheck
	}

	if len(roles) > 0 && !caller.Is(roles...) {
		return caller, failure.ForbiddenError
	}

	return caller, nil
}
