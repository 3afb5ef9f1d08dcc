package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-elms/internal/identity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidSession = errors.New("invalid session")

type claims struct {
	SessionID string `json:"sid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues signed session handles and resolves them against a Store.
// The handle carries no expiry; idleness is enforced by the store TTL.
type Manager struct {
	store  Store
	secret []byte
	idle   time.Duration
	now    identity.Clock
	logger *zap.Logger
}

func NewManager(store Store, secret string, idle time.Duration, logger ...*zap.Logger) *Manager {
	l := zap.L().Named("session.manager")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.manager")
	}

	return &Manager{
		store:  store,
		secret: []byte(secret),
		idle:   idle,
		now:    identity.SystemClock,
		logger: l,
	}
}

func (m *Manager) IdleTimeout() time.Duration {
	return m.idle
}

func (m *Manager) Establish(ctx context.Context, caller identity.Caller) (string, error) {
	if !caller.Role.Valid() || caller.IdentityID == "" {
		return "", ErrInvalidSession
	}

	rec := Record{
		ID:          uuid.NewString(),
		Role:        caller.Role,
		IdentityID:  caller.IdentityID,
		DisplayName: caller.DisplayName,
		Email:       caller.Email,
		CreatedAt:   m.now(),
	}
	if err := m.store.Save(ctx, rec, m.idle); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: rec.ID,
		Role:      string(rec.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  rec.IdentityID,
			IssuedAt: jwt.NewNumericDate(rec.CreatedAt),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}

	m.logger.Debug("session established",
		zap.String("role", string(rec.Role)),
		zap.String("identity_id", rec.IdentityID),
	)
	return signed, nil
}

// Resolve returns the caller behind a handle and slides its idle window.
// Store failures are returned as-is so the gate can tell them apart.
func (m *Manager) Resolve(ctx context.Context, role identity.Role, handle string) (identity.Caller, error) {
	sid, err := m.parse(role, handle)
	if err != nil {
		return identity.Caller{}, err
	}

	rec, err := m.store.Touch(ctx, role, sid, m.idle)
	if errors.Is(err, ErrSessionNotFound) {
		return identity.Caller{}, ErrInvalidSession
	}
	if err != nil {
		return identity.Caller{}, err
	}
	return rec.Caller(), nil
}

// Destroy invalidates the session. Unknown or already expired handles are
// not an error.
func (m *Manager) Destroy(ctx context.Context, role identity.Role, handle string) error {
	sid, err := m.parse(role, handle)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, role, sid)
}

func (m *Manager) parse(role identity.Role, handle string) (string, error) {
	if handle == "" {
		return "", ErrInvalidSession
	}

	var c claims
	token, err := jwt.ParseWithClaims(handle, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSession
	}
	if c.Role != string(role) || c.SessionID == "" {
		return "", ErrInvalidSession
	}
	return c.SessionID, nil
}

// WithClock pins the manager's clock; intended for tests.
func (m *Manager) WithClock(now identity.Clock) *Manager {
	m.now = now
	return m
}
