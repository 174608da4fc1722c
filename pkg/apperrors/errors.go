package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and handlers
var (
	// ErrNotFound is returned when a referenced user, photo, collection or
	// post does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned for malformed input such as an empty
	// guest-book message or an unknown reaction kind.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTransientStore is returned when the backing store is unavailable
	// mid-operation. Ledger operations are idempotent at the call level, so
	// callers may retry the whole call.
	ErrTransientStore = errors.New("transient store failure")
	// ErrUnauthorized is returned when a request requires an authenticated
	// user and none is present.
	ErrUnauthorized = errors.New("unauthorized")
)

// Wrap annotates err with a message, preserving the sentinel for errors.Is.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NotFound builds an ErrNotFound for a named entity.
func NotFound(entity, id string) error {
	return fmt.Errorf("%s %q: %w", entity, id, ErrNotFound)
}

// InvalidArgument builds an ErrInvalidArgument with a reason.
func InvalidArgument(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrInvalidArgument)
}

// Transient marks err as a retryable store failure.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", err, ErrTransientStore)
}

// IsNotFound reports whether err is an ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidArgument reports whether err is an ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsTransient reports whether err is a retryable store failure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransientStore)
}
