package identity

import (
	"context"
	"strings"
)

// Caller is the authenticated identity handed to protected operations.
type Caller struct {
	Role        Role   `json:"role"`
	IdentityID  string `json:"id"`
	DisplayName string `json:"username"`
	Email       string `json:"email"`
}

type callerKey struct{}

func NewContext(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

func FromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(Caller)
	if !ok || caller.IdentityID == "" || !caller.Role.Valid() {
		return Caller{}, false
	}
	return caller, true
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
