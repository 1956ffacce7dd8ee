package service

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyResolved = errors.New("already_resolved")
	ErrBadTransition   = errors.New("invalid_transition")

	// ErrPasswordMismatch carries the exact message the screens render.
	ErrPasswordMismatch   = errors.New("Passwords don't match")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
