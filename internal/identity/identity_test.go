package identity_test

import (
	"context"
	"testing"
	"time"

	"go-elms/internal/identity"

	"github.com/stretchr/testify/assert"
)

func TestRole(t *testing.T) {
	assert.True(t, identity.RoleHR.Valid())
	assert.False(t, identity.Role("Manager").Valid())
	assert.Equal(t, "employee", identity.RoleEmployee.Slug())
	assert.True(t, identity.RoleAdmin.IsReviewer())
	assert.False(t, identity.RoleEmployee.IsReviewer())

	role, ok := identity.ParseRole("hr")
	assert.True(t, ok)
	assert.Equal(t, identity.RoleHR, role)

	_, ok = identity.ParseRole("root")
	assert.False(t, ok)
}

func TestCallerContext(t *testing.T) {
	_, ok := identity.FromContext(context.Background())
	assert.False(t, ok)

	caller := identity.Caller{Role: identity.RoleHR, IdentityID: "hr-1", DisplayName: "Hana"}
	got, ok := identity.FromContext(identity.NewContext(context.Background(), caller))
	assert.True(t, ok)
	assert.Equal(t, caller, got)

	_, ok = identity.FromContext(identity.NewContext(context.Background(), identity.Caller{Role: "x", IdentityID: "1"}))
	assert.False(t, ok)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "hana@corp.io", identity.NormalizeEmail("  Hana@Corp.IO "))
}

func TestPassword(t *testing.T) {
	hash, err := identity.HashPassword("s3cret!")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, identity.VerifyPassword(&hash, "s3cret!"))
	assert.False(t, identity.VerifyPassword(&hash, "wrong"))
	assert.False(t, identity.VerifyPassword(nil, "s3cret!"))

	empty := ""
	assert.False(t, identity.VerifyPassword(&empty, ""))
}

func TestResetToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	first, err := identity.NewResetToken(now)
	assert.NoError(t, err)
	assert.Len(t, first.Plain, 64)
	assert.Equal(t, identity.DigestToken(first.Plain), first.Digest)
	assert.NotEqual(t, first.Plain, first.Digest)
	assert.Equal(t, now.Add(15*time.Minute), first.ExpiresAt)

	second, err := identity.NewResetToken(now)
	assert.NoError(t, err)
	assert.NotEqual(t, first.Plain, second.Plain)
}

func TestTokenUsable(t *testing.T) {
	expiry := time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC)

	assert.True(t, identity.TokenUsable(&expiry, expiry.Add(-time.Nanosecond)))
	assert.False(t, identity.TokenUsable(&expiry, expiry))
	assert.False(t, identity.TokenUsable(&expiry, expiry.Add(time.Second)))
	assert.False(t, identity.TokenUsable(nil, expiry))
}
