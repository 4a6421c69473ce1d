package uow

import (
	"context"
	"resetpoint/internal/core/domain/reset"
	"resetpoint/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.Directory
	ResetRequests() reset.RequestRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
