package resetpassword

import (
	"context"
	"errors"
	e "resetpoint/internal/core/domain/errors"
	"resetpoint/internal/core/domain/logging"
	"resetpoint/internal/core/domain/reset"
	uow "resetpoint/internal/core/domain/unit_of_work"
	"resetpoint/internal/core/domain/user"
	"resetpoint/internal/core/services"
	"time"
)

type Input struct {
	ID          reset.ID
	Token       reset.PlaintextToken
	NewPassword user.RawPassword
}

type Result struct {
	User user.User
}

type service struct {
	log               logging.Logger
	unitOfWork        uow.UnitOfWork
	requestRepository reset.RequestRepository
	userDirectory     user.Directory
	tokenCodec        reset.TokenCodec
	passwordHasher    user.PasswordHasher
	now               func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	requestRepository reset.RequestRepository,
	userDirectory user.Directory,
	tokenCodec reset.TokenCodec,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if requestRepository == nil {
		panic(e.NewNilArgumentError("requestRepository"))
	}
	if userDirectory == nil {
		panic(e.NewNilArgumentError("userDirectory"))
	}
	if tokenCodec == nil {
		panic(e.NewNilArgumentError("tokenCodec"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		unitOfWork:        unitOfWork,
		requestRepository: requestRepository,
		userDirectory:     userDirectory,
		tokenCodec:        tokenCodec,
		passwordHasher:    passwordHasher,
		now:               now,
	}
}

// Run validates the token and atomically sets the new password while
// deleting every outstanding reset request for the account. All validation
// failures collapse to ErrInvalidResetToken so the caller learns nothing
// about which check failed.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	request, err := s.requestRepository.GetByID(ctx, input.ID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, reset.ErrRequestDoesNotExist) {
		s.log.Info(ctx, "Reset request not found.", logging.Entry("requestID", input.ID))
		return result, reset.ErrInvalidResetToken
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get reset request.",
			logging.Entry("requestID", input.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if !s.tokenCodec.VerifyToken(input.Token, request.TokenDigest) {
		s.log.Info(ctx, "Reset token digest mismatch.", logging.Entry("requestID", request.ID))
		return result, reset.ErrInvalidResetToken
	}
	if request.IsExpired(s.now()) {
		s.log.Info(
			ctx,
			"Reset request has expired.",
			logging.Entry("requestID", request.ID),
			logging.Entry("expiresAt", request.ExpiresAt),
		)
		return result, reset.ErrInvalidResetToken
	}

	u, err := s.userDirectory.GetActiveByID(ctx, request.UserID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(
			ctx,
			"User is gone for a pending reset request.",
			logging.Entry("requestID", request.ID),
			logging.Entry("userID", request.UserID),
		)
		return result, reset.ErrInvalidResetToken
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("userID", request.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash new password.", logging.Entry("err", err))
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	deletedIDs, err := uow.ResetRequests().DeleteAllForUser(ctx, u.ID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not delete reset requests for user.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !containsID(deletedIDs, request.ID) {
		// A concurrent redemption already consumed this request.
		s.log.Info(
			ctx,
			"Reset request has been redeemed concurrently.",
			logging.Entry("requestID", request.ID),
			logging.Entry("userID", u.ID),
		)
		return result, reset.ErrInvalidResetToken
	}

	err = uow.Users().SetPassword(ctx, u.ID, newPasswordHash)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not set new password.",
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
			"Could not commit password reset.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userID", u.ID),
		logging.Entry("requestID", request.ID),
		logging.Entry("invalidatedRequests", len(deletedIDs)),
	)
	return Result{User: u}, nil
}

func containsID(ids []reset.ID, id reset.ID) bool {
	for _, deleted := range ids {
		if deleted == id {
			return true
		}
	}
	return false
}
