package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const ResetTokenTTL = 15 * time.Minute

// ResetToken is a freshly minted password-set token. Only Digest is stored.
type ResetToken struct {
	Plain     string
	Digest    string
	ExpiresAt time.Time
}

func NewResetToken(now time.Time) (ResetToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return ResetToken{}, err
	}
	plain := hex.EncodeToString(buf)

	return ResetToken{
		Plain:     plain,
		Digest:    DigestToken(plain),
		ExpiresAt: now.Add(ResetTokenTTL),
	}, nil
}

func DigestToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// TokenUsable reports whether a stored expiry is still in the future.
// A token at exactly its expiry instant is no longer usable.
func TokenUsable(expiresAt *time.Time, now time.Time) bool {
	return expiresAt != nil && now.Before(*expiresAt)
}
