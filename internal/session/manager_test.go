package session_test

import (
	"context"
	"testing"
	"time"

	"go-elms/internal/identity"
	"go-elms/internal/session"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newManager(now *time.Time) (*session.Manager, *session.MemoryStore) {
	clock := func() time.Time { return *now }
	store := session.NewMemoryStore(clock)
	m := session.NewManager(store, "test-secret", 10*time.Minute, zap.NewNop()).WithClock(clock)
	return m, store
}

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m, _ := newManager(&now)
	caller := identity.Caller{Role: identity.RoleEmployee, IdentityID: "emp-1", DisplayName: "Eli", Email: "eli@corp.io"}

	handle, err := m.Establish(ctx, caller)
	assert.NoError(t, err)
	assert.NotEmpty(t, handle)

	got, err := m.Resolve(ctx, identity.RoleEmployee, handle)
	assert.NoError(t, err)
	assert.Equal(t, caller, got)

	assert.NoError(t, m.Destroy(ctx, identity.RoleEmployee, handle))
	_, err = m.Resolve(ctx, identity.RoleEmployee, handle)
	assert.ErrorIs(t, err, session.ErrInvalidSession)
}

func TestManagerRejectsOtherRole(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m, _ := newManager(&now)

	handle, err := m.Establish(ctx, identity.Caller{Role: identity.RoleEmployee, IdentityID: "emp-1"})
	assert.NoError(t, err)

	_, err = m.Resolve(ctx, identity.RoleHR, handle)
	assert.ErrorIs(t, err, session.ErrInvalidSession)
	_, err = m.Resolve(ctx, identity.RoleAdmin, handle)
	assert.ErrorIs(t, err, session.ErrInvalidSession)
}

func TestManagerIdleExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m, _ := newManager(&now)

	handle, err := m.Establish(ctx, identity.Caller{Role: identity.RoleAdmin, IdentityID: "adm-1"})
	assert.NoError(t, err)

	now = now.Add(10*time.Minute + time.Second)
	_, err = m.Resolve(ctx, identity.RoleAdmin, handle)
	assert.ErrorIs(t, err, session.ErrInvalidSession)
}

func TestManagerRejectsForgedHandle(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m, store := newManager(&now)
	other := session.NewManager(store, "another-secret", 10*time.Minute, zap.NewNop())

	handle, err := other.Establish(ctx, identity.Caller{Role: identity.RoleAdmin, IdentityID: "adm-1"})
	assert.NoError(t, err)

	_, err = m.Resolve(ctx, identity.RoleAdmin, handle)
	assert.ErrorIs(t, err, session.ErrInvalidSession)

	_, err = m.Resolve(ctx, identity.RoleAdmin, "")
	assert.ErrorIs(t, err, session.ErrInvalidSession)
	assert.NoError(t, m.Destroy(ctx, identity.RoleAdmin, "garbage"))
}

func TestManagerEstablishRequiresIdentity(t *testing.T) {
	now := time.Now()
	m, _ := newManager(&now)

	_, err := m.Establish(context.Background(), identity.Caller{Role: identity.RoleHR})
	assert.ErrorIs(t, err, session.ErrInvalidSession)
}
