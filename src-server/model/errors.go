package model

import (
	"errors"
	"strings"
)

// ValidationError reports a single field failing a local constraint. Reason is
// the user-visible message; consumers key off the exact text.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ErrEventNotFound is returned when a booking references an event that does
// not exist at the moment the reference is written.
var ErrEventNotFound = errors.New("Event does not exist. Cannot create booking for non-existent event.")

// IsValidation reports whether err carries a field-level validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDuplicate reports whether err is a unique-index violation surfaced by the
// sqlite driver, e.g. two events whose titles produce the same slug.
func IsDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
