package user

import (
	"context"
	c "resetpoint/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

// Directory is the account lookup capability the reset flow depends on.
// GetActiveByID excludes soft-deleted accounts.
type Directory interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	GetActiveByID(ctx context.Context, id ID) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	// ValidatePassword has no caller in the reset flow itself; it is the
	// counterpart a login flow would use, and tests rely on it to check
	// stored hashes.
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}
