package domain

import (
	"errors"
	"fmt"
)

// Character store errors
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("character not found")
	ErrStore      = errors.New("store failure")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StoreError wraps a persistence failure so callers can match ErrStore and
// still reach the driver error.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}
