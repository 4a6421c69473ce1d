package reset

import "errors"

var (
	ErrResetAlreadyPending = errors.New("password reset is already pending")
	ErrRequestDoesNotExist = errors.New("password reset request does not exist")
	ErrInvalidResetToken   = errors.New("invalid or expired password reset token")
)
