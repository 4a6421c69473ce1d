package services

import (
	"resetpoint/internal/app/deps"
	"resetpoint/internal/core/services"
	forgotpassword "resetpoint/internal/core/services/forgot_password"
	resetpassword "resetpoint/internal/core/services/reset_password"
)

type Services struct {
	ForgotPassword services.Service[forgotpassword.Input, forgotpassword.Result]
	ResetPassword  services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	forgotPassword := forgotpassword.NewWithResetLinkSending(
		deps.Logger,
		deps.EmailSender,
		deps.RequestRepository,
		forgotpassword.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.UserDirectory,
			deps.TokenCodec,
			deps.Config.ResetTokenTTL,
			deps.Now,
		),
	)
	resetPassword := resetpassword.NewWithChangedNotification(
		deps.Logger,
		deps.EmailSender,
		resetpassword.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.RequestRepository,
			deps.UserDirectory,
			deps.TokenCodec,
			deps.PasswordHasher,
			deps.Now,
		),
	)
	return &Services{
		ForgotPassword: forgotPassword,
		ResetPassword:  resetPassword,
	}
}
