package common

import "errors"

// Sentinel errors shared by repositories, services and transports.
// Callers match them with errors.Is.
var (
	// repository specific errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// service specific errors
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorValidation       = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// token lifecycle errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
