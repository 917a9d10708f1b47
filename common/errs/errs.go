package errs

import (
	"errors"
	"fmt"
)

type HttpError struct {
	Code    int
	Message string
	Data    any
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("code %d: %s, data: %v", e.Code, e.Message, e.Data)
}

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInvalidState      = errors.New("invalid state")
	ErrStorageFailure    = errors.New("storage failure")
	ErrDuplicateRequest  = errors.New("duplicate request")
)

// Storage wraps a database error so callers can tell it apart from business outcomes.
func Storage(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageFailure, op, err)
}
