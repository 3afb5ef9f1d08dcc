package identity

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrAccountNotFound = errors.New("account not found")

// Account is the credential view every role's store exposes.
type Account struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   *string
	Approved       bool
	ResetExpiresAt *time.Time
}

// AccountStore is implemented by the admin, hr and employee repositories.
// Lookups return ErrAccountNotFound when nothing matches.
type AccountStore interface {
	WithTx(tx *sql.Tx) AccountStore
	FindAccountByEmail(ctx context.Context, email string) (Account, error)
	FindAccountByResetDigest(ctx context.Context, digest string) (Account, error)
	// SaveResetToken replaces any earlier token for the account.
	SaveResetToken(ctx context.Context, id, digest string, expiresAt time.Time) error
	// SetPassword stores hash and clears the token, but only while digest is
	// still the account's current token.
	SetPassword(ctx context.Context, id, digest, hash string) (bool, error)
}
