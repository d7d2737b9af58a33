package groups

import (
	"errors"
	"fmt"

	"github.com/mmynk/splitledger/internal/storage"
)

var (
	// ErrValidation is returned for bad input, before anything is written.
	ErrValidation = errors.New("validation failed")
	// ErrStateConflict is returned when the current workflow state does not
	// allow the operation.
	ErrStateConflict = errors.New("state conflict")
	// ErrUnauthorized is returned when the actor may not perform the operation.
	ErrUnauthorized = errors.New("not authorized")
	// ErrNotFound is returned for unknown groups and expenses.
	ErrNotFound = errors.New("not found")
	// ErrPersistence wraps storage failures. Nothing was written.
	ErrPersistence = errors.New("persistence failed")

	// ErrAlreadyPending is the conflict reported for a second settlement
	// request on the same pair.
	ErrAlreadyPending = fmt.Errorf("%w: settlement already pending", ErrStateConflict)
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func unauthorized(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStateConflict, fmt.Sprintf(format, args...))
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// storageError translates a storage failure into the manager's error kinds.
func storageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, storage.ErrConflict), errors.Is(err, storage.ErrLocked):
		return fmt.Errorf("%w: %v", ErrStateConflict, err)
	default:
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
}

// corruptRecord reports a stored record the calculator rejects. Records are
// validated on write, so this is a persistence failure, not bad input.
func corruptRecord(err error) error {
	return fmt.Errorf("%w: corrupt expense record: %v", ErrPersistence, err)
}
