package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyBilled     = errors.New("rental already billed")
	ErrStorage           = errors.New("storage failure")
)

// ValidationError reports bad caller input; the caller corrects it and retries.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StateError rejects an operation against a rental in an incompatible status.
type StateError struct {
	RentalID string
	From     RentalStatus
	To       RentalStatus
}

func (e *StateError) Error() string {
	if e.From == RentalStatusBilled {
		return fmt.Sprintf("rental %s is already billed", e.RentalID)
	}
	return fmt.Sprintf("rental %s cannot move from %q to %q", e.RentalID, e.From, e.To)
}

func (e *StateError) Unwrap() []error {
	if e.From == RentalStatusBilled {
		return []error{ErrInvalidTransition, ErrAlreadyBilled}
	}
	return []error{ErrInvalidTransition}
}

// StorageError wraps a read or write failure of the backing store.
func StorageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
