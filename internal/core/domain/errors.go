package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown usernames and password
	// mismatches so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBanned      = errors.New("account has been banned")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("admin access required")

	ErrMissingKey = errors.New("acceptance key is required")
	// ErrInvalidKey covers both nonexistent and already-used keys.
	ErrInvalidKey    = errors.New("invalid or used acceptance key")
	ErrUsernameTaken = errors.New("username already exists")

	ErrNotFound     = errors.New("user not found")
	ErrEmptyContent = errors.New("content must not be empty")
	ErrStorage      = errors.New("storage error")
)
