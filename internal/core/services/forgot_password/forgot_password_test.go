package forgotpassword

import (
	"context"
	c "resetpoint/internal/core/domain/common"
	"resetpoint/internal/core/domain/logging"
	"resetpoint/internal/core/domain/reset"
	uow "resetpoint/internal/core/domain/unit_of_work"
	"resetpoint/internal/core/domain/user"
	"resetpoint/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	USER_ID = 123
	EMAIL   = "test@test.test"
	TOKEN   = "test-plaintext-token"
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

const TOKEN_TTL = time.Hour

type testDeps struct {
	log         *logging.FakeLogger
	directory   *user.FakeDirectory
	requestRepo *reset.FakeRequestRepository
	unitOfWork  *uow.FakeUnitOfWork
	codec       *reset.FakeTokenCodec
}

func setupDeps() *testDeps {
	directory := user.NewFakeDirectory()
	directory.Users = []user.User{{ID: USER_ID, Email: c.Email(EMAIL), CreatedAt: NOW}}
	requestRepo := reset.NewFakeRequestRepository()
	return &testDeps{
		log:         logging.NewFakeLogger(),
		directory:   directory,
		requestRepo: requestRepo,
		unitOfWork:  &uow.FakeUnitOfWork{Context: uow.NewFakeUnitOfWorkContext(directory, requestRepo)},
		codec:       reset.NewFakeTokenCodec(TOKEN),
	}
}

func (d *testDeps) createService() services.Service[Input, Result] {
	return New(d.log, d.unitOfWork, d.directory, d.codec, TOKEN_TTL, func() time.Time { return NOW })
}

func TestRequestCreatedAndTokenIssued(t *testing.T) {
	// Setup ---
	deps := setupDeps()
	service := deps.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Email: c.Email(EMAIL)})

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, reset.PlaintextToken(TOKEN), result.Token)
	require.Equal(t, user.ID(USER_ID), result.User.ID)

	require.Len(t, deps.requestRepo.Requests, 1)
	request := deps.requestRepo.Requests[0]
	require.Equal(t, result.Request.ID, request.ID)
	require.Equal(t, user.ID(USER_ID), request.UserID)
	require.Equal(t, deps.codec.DigestToken(TOKEN), request.TokenDigest)
	require.True(t, NOW.Add(TOKEN_TTL).Equal(request.ExpiresAt))
	require.True(t, NOW.Equal(request.CreatedAt))
}

func TestUnknownEmail(t *testing.T) {
	deps := setupDeps()
	service := deps.createService()

	_, err := service.Run(context.Background(), Input{Email: c.Email("unknown@test.test")})

	require.ErrorIs(t, err, user.ErrUserDoesNotExist)
	require.Empty(t, deps.requestRepo.Requests)
}

func TestResetAlreadyPending(t *testing.T) {
	deps := setupDeps()
	service := deps.createService()

	first, err := service.Run(context.Background(), Input{Email: c.Email(EMAIL)})
	require.NoError(t, err)

	_, err = service.Run(context.Background(), Input{Email: c.Email(EMAIL)})

	require.ErrorIs(t, err, reset.ErrResetAlreadyPending)
	require.Len(t, deps.requestRepo.Requests, 1)
	require.Equal(t, first.Request.ID, deps.requestRepo.Requests[0].ID)
}

func TestExpiredRequestDoesNotBlockNewOne(t *testing.T) {
	deps := setupDeps()
	expired := reset.Request{
		ID:          reset.ID("expired-request"),
		UserID:      USER_ID,
		TokenDigest: reset.TokenDigest("stale-digest"),
		ExpiresAt:   NOW.Add(-time.Minute),
		CreatedAt:   NOW.Add(-TOKEN_TTL - time.Minute),
	}
	deps.requestRepo.Requests = append(deps.requestRepo.Requests, expired)
	service := deps.createService()

	result, err := service.Run(context.Background(), Input{Email: c.Email(EMAIL)})

	require.NoError(t, err)
	require.Len(t, deps.requestRepo.Requests, 1)
	require.Equal(t, result.Request.ID, deps.requestRepo.Requests[0].ID)
	require.NotEqual(t, expired.ID, result.Request.ID)
}

func TestRepositoryError(t *testing.T) {
	deps := setupDeps()
	deps.requestRepo.ReturnError = true
	service := deps.createService()

	_, err := service.Run(context.Background(), Input{Email: c.Email(EMAIL)})

	require.Error(t, err)
	require.NotErrorIs(t, err, reset.ErrResetAlreadyPending)
	require.NotErrorIs(t, err, user.ErrUserDoesNotExist)
}
