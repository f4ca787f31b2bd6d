package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level errors
var (
	ErrInvalidGoogleToken = errors.New("invalid google credential")
	ErrSignInUnavailable  = errors.New("google sign-in is not configured")
	ErrCannotFollowSelf   = errors.New("cannot follow yourself")
)
