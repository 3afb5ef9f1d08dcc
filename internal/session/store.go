package session

import (
	"context"
	"errors"
	"time"

	"go-elms/internal/identity"
)

var ErrSessionNotFound = errors.New("session not found")

// Record is the server-side half of a session.
type Record struct {
	ID          string        `json:"id"`
	Role        identity.Role `json:"role"`
	IdentityID  string        `json:"identity_id"`
	DisplayName string        `json:"display_name"`
	Email       string        `json:"email"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (r Record) Caller() identity.Caller {
	return identity.Caller{
		Role:        r.Role,
		IdentityID:  r.IdentityID,
		DisplayName: r.DisplayName,
		Email:       r.Email,
	}
}

// Store keeps sessions keyed by role and id. Touch must extend the idle
// window atomically with the read and return ErrSessionNotFound once it
// has lapsed.
//
//go:generate mockgen -destination=mock/store_mock.go -package=mock . Store
type Store interface {
	Save(ctx context.Context, rec Record, idle time.Duration) error
	Touch(ctx context.Context, role identity.Role, id string, idle time.Duration) (Record, error)
	Delete(ctx context.Context, role identity.Role, id string) error
}
