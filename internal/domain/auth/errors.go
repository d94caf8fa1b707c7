package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid registration number or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenRevoked        = errors.New("token has been revoked")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrMissingSession      = errors.New("no authenticated session")
)
