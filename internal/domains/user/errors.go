package user

import "errors"

var (
	// Conflict
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Authentication. Returned for both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
