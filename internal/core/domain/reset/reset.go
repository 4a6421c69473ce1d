package reset

import (
	"resetpoint/internal/core/domain/user"
	"time"
)

// ID is the public reference embedded in the emailed reset link. It is
// assigned by the store and safe to expose; the plaintext token is not.
type ID string

// PlaintextToken is delivered to the user exactly once and never persisted.
type PlaintextToken string

func (t PlaintextToken) String() string {
	return "***"
}

// TokenDigest is the keyed one-way derivation of a plaintext token. Only
// digests are stored and compared.
type TokenDigest string

type Request struct {
	ID          ID
	UserID      user.ID
	TokenDigest TokenDigest
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

func (r *Request) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
