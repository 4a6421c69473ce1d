package forgotpassword

import (
	"context"
	"errors"
	c "resetpoint/internal/core/domain/common"
	e "resetpoint/internal/core/domain/errors"
	"resetpoint/internal/core/domain/logging"
	"resetpoint/internal/core/domain/reset"
	uow "resetpoint/internal/core/domain/unit_of_work"
	"resetpoint/internal/core/domain/user"
	"resetpoint/internal/core/services"
	"time"
)

type Input struct {
	Email c.Email
}

type Result struct {
	User    user.User
	Request reset.Request
	// Token is the plaintext reset token. It leaves the service only
	// through the emailed link (and the test-mode response header).
	Token reset.PlaintextToken
}

type service struct {
	log           logging.Logger
	unitOfWork    uow.UnitOfWork
	userDirectory user.Directory
	tokenCodec    reset.TokenCodec
	tokenTTL      time.Duration
	now           func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	userDirectory user.Directory,
	tokenCodec reset.TokenCodec,
	tokenTTL time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if userDirectory == nil {
		panic(e.NewNilArgumentError("userDirectory"))
	}
	if tokenCodec == nil {
		panic(e.NewNilArgumentError("tokenCodec"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:           log,
		unitOfWork:    unitOfWork,
		userDirectory: userDirectory,
		tokenCodec:    tokenCodec,
		tokenTTL:      tokenTTL,
		now:           now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userDirectory.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token := s.tokenCodec.GenerateToken()
	now := s.now()

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	request, err := uow.ResetRequests().Create(ctx, reset.CreateInput{
		UserID:      u.ID,
		TokenDigest: s.tokenCodec.DigestToken(token),
		ExpiresAt:   now.Add(s.tokenTTL),
		CreatedAt:   now,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, reset.ErrResetAlreadyPending) {
		s.log.Info(
			ctx,
			"Password reset is already pending for the user.",
			logging.Entry("userID", u.ID),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create password reset request.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = uow.Commit(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not commit password reset request.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset request has been created.",
		logging.Entry("userID", u.ID),
		logging.Entry("requestID", request.ID),
		logging.Entry("expiresAt", request.ExpiresAt),
	)
	return Result{User: u, Request: request, Token: token}, nil
}
