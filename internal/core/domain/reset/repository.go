package reset

import (
	"context"
	"resetpoint/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	UserID      user.ID
	TokenDigest TokenDigest
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// RequestRepository persists reset requests. At most one unexpired request
// may exist per user: Create returns ErrResetAlreadyPending when one does.
// DeleteAllForUser returns the ids of the deleted rows so a caller can
// confirm the row it redeemed was cleared by its own transaction.
type RequestRepository interface {
	Create(ctx context.Context, input CreateInput) (Request, error)
	GetByID(ctx context.Context, id ID) (Request, error)
	DeleteAllForUser(ctx context.Context, userID user.ID) ([]ID, error)
}
