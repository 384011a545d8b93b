package errors

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalid         = errors.New("invalid")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("incorrect password")
	ErrAccountDisabled = errors.New("account disabled")
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidCode     = errors.New("verification code incorrect or expired")
	ErrRegisterFailed  = errors.New("registration failed")
	ErrMailSendFailed  = errors.New("failed to send email")
	ErrInternal        = errors.New("internal")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsEmailTaken(err error) bool {
	return errors.Is(err, ErrEmailTaken)
}

func IsInvalidCode(err error) bool {
	return errors.Is(err, ErrInvalidCode)
}
