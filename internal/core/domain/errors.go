package domain

import "errors"

var (
	// ErrInvalidCredentials covers bad login input and failed password checks.
	// Unknown email and wrong password collapse into it so neither case leaks.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers every token failure mode: malformed structure,
	// invalid signature, expired timestamp, and a token whose subject no longer
	// exists. Callers must not be able to tell these apart.
	ErrInvalidToken = errors.New("invalid token")

	ErrUserExists   = errors.New("email already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("access forbidden")
	ErrCatNotFound  = errors.New("cat not found")

	ErrInvalidPayment = errors.New("invalid payment request")
)
