package errcode

// Stable wire codes; clients branch on these, so values never change.
const (
	ErrUnknown         = -1
	ErrInvalid         = 4000
	ErrUserNotFound    = 4001
	ErrInvalidPassword = 4002
	ErrAccountDisabled = 4003
	ErrEmailTaken      = 4004
	ErrInvalidCode     = 4005
	ErrRegisterFailed  = 4006
	ErrMailSendFailed  = 4007
	ErrUnauthorized    = 4010
	ErrNotFound        = 4040
)
