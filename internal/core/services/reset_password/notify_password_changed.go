package resetpassword

import (
	"context"
	"errors"
	e "resetpoint/internal/core/domain/errors"
	"resetpoint/internal/core/domain/logging"
	"resetpoint/internal/core/domain/reset"
	"resetpoint/internal/core/services"
)

type serviceWithChangedNotification struct {
	log      logging.Logger
	notifier reset.ChangedNotifier
	inner    services.Service[Input, Result]
}

// NewWithChangedNotification wraps the redeemer with a best-effort
// "password was changed" email. Delivery failures never roll back the
// committed password change.
func NewWithChangedNotification(
	log logging.Logger,
	notifier reset.ChangedNotifier,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithChangedNotification{
		log:      log,
		notifier: notifier,
		inner:    inner,
	}
}

func (s *serviceWithChangedNotification) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		return result, err
	}

	if err := s.notifier.SendPasswordChanged(ctx, result.User); err != nil {
		s.log.Error(
			ctx,
			"Could not send password changed notification.",
			logging.Entry("userID", result.User.ID),
			logging.Entry("err", err),
		)
		return result, nil
	}

	s.log.Info(
		ctx,
		"Password changed notification has been sent.",
		logging.Entry("userID", result.User.ID),
	)
	return result, nil
}
