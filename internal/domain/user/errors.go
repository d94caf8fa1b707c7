package user

import "errors"

var (
	ErrUserNotFound              = errors.New("user not found")
	ErrRegistrationNumberExists  = errors.New("registration number already registered")
	ErrInvalidRegistrationNumber = errors.New("invalid registration number")
	ErrManagerAccessRequired     = errors.New("manager access required")
	ErrInsufficientPermissions   = errors.New("insufficient permissions")
)
