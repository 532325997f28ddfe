package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrCannotCreateEntry  = errors.New("cannot create log entry")
	ErrCannotGetEntries   = errors.New("cannot get log entries")
	ErrInvalidCredentials = errors.New("username or password is invalid")
	ErrUserNotFound       = errors.New("user not found")
)

func newValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
