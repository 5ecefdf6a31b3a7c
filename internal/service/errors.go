package service

import "errors"

var (
	// ErrUsernameTaken is returned when registering an already-existing
	// username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrAuthenticationFailed is the uniform login failure: callers cannot
	// tell a missing user from a wrong password.
	ErrAuthenticationFailed = errors.New("invalid credentials")
	// ErrInternalServer hides infrastructure failures from clients.
	ErrInternalServer = errors.New("internal server error")
)
