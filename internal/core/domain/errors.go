package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every service failure matches exactly one of these via
// errors.Is, or none of them for internal failures.
var (
	ErrNotAuthorized      = errors.New("service number is not authorized for registration")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid service number or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("resource not found")
)

// Error carries a kind plus a client-facing message
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Errorf builds a kinded error with a formatted client message
func Errorf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation is shorthand for Errorf(ErrValidation, ...)
func Validation(format string, args ...interface{}) error {
	return Errorf(ErrValidation, format, args...)
}

// Message returns the client-facing text for a kinded error
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	for _, kind := range []error{
		ErrNotAuthorized, ErrAlreadyExists, ErrInvalidCredentials,
		ErrUnauthenticated, ErrInvalidToken, ErrValidation, ErrNotFound,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return ""
}
