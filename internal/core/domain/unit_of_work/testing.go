package uow

import (
	"context"
	"fmt"
	"resetpoint/internal/core/domain/reset"
	"resetpoint/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	Directory         *user.FakeDirectory
	RequestRepository *reset.FakeRequestRepository
	WasRollbackCalled bool
	WasCommitCalled   bool
	FailCommit        bool
}

func NewFakeUnitOfWorkContext(
	directory *user.FakeDirectory,
	requestRepository *reset.FakeRequestRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		Directory:         directory,
		RequestRepository: requestRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	if c.FailCommit {
		return fmt.Errorf("could not commit")
	}
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.Directory {
	return c.Directory
}

func (c *FakeUnitOfWorkContext) ResetRequests() reset.RequestRepository {
	return c.RequestRepository
}

type FakeUnitOfWork struct {
	Context *FakeUnitOfWorkContext
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			user.NewFakeDirectory(),
			reset.NewFakeRequestRepository(),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	return u.Context, nil
}
