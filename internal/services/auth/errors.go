package auth

import "errors"

var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserAlreadyExists  = errors.New("user with that username or email already exists")
	ErrUserNotFound       = errors.New("user not found")
)
