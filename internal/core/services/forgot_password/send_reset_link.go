package forgotpassword

import (
	"context"
	"errors"
	e "resetpoint/internal/core/domain/errors"
	"resetpoint/internal/core/domain/logging"
	"resetpoint/internal/core/domain/reset"
	"resetpoint/internal/core/services"
)

type serviceWithResetLinkSending struct {
	log               logging.Logger
	sender            reset.LinkSender
	requestRepository reset.RequestRepository
	inner             services.Service[Input, Result]
}

// NewWithResetLinkSending wraps the issuer with reset link delivery.
// If the email cannot be sent, the just-created request is deleted so the
// user is not locked out of retrying until the request expires.
func NewWithResetLinkSending(
	log logging.Logger,
	sender reset.LinkSender,
	requestRepository reset.RequestRepository,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if requestRepository == nil {
		panic(e.NewNilArgumentError("requestRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithResetLinkSending{
		log:               log,
		sender:            sender,
		requestRepository: requestRepository,
		inner:             inner,
	}
}

func (s *serviceWithResetLinkSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Skip sending password reset link.", logging.Entry("err", err))
		return result, err
	}

	err = s.sender.SendResetLink(ctx, result.User, result.Request.ID, result.Token)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset link.",
			logging.Entry("userID", result.User.ID),
			logging.Entry("requestID", result.Request.ID),
			logging.Entry("err", err),
		)
		s.deletePendingRequest(result)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset link has been sent to the user.",
		logging.Entry("userID", result.User.ID),
		logging.Entry("requestID", result.Request.ID),
	)
	return result, nil
}

// deletePendingRequest is best effort and runs detached from the request
// context so a canceled request does not leave a dangling pending row.
func (s *serviceWithResetLinkSending) deletePendingRequest(result Result) {
	_, err := s.requestRepository.DeleteAllForUser(context.Background(), result.User.ID)
	if err != nil {
		s.log.Error(
			context.Background(),
			"Could not delete pending reset request after failed link delivery.",
			logging.Entry("userID", result.User.ID),
			logging.Entry("requestID", result.Request.ID),
			logging.Entry("err", err),
		)
	}
}
