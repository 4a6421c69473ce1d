package reset

import (
	"context"
	"resetpoint/internal/core/domain/user"
)

// TokenCodec produces unguessable plaintext tokens and keyed one-way
// digests over them. VerifyToken must compare in constant time.
type TokenCodec interface {
	GenerateToken() PlaintextToken
	DigestToken(token PlaintextToken) TokenDigest
	VerifyToken(token PlaintextToken, stored TokenDigest) bool
}

type LinkSender interface {
	SendResetLink(ctx context.Context, u user.User, id ID, token PlaintextToken) error
}

type ChangedNotifier interface {
	SendPasswordChanged(ctx context.Context, u user.User) error
}
