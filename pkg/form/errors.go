package form

import (
	"errors"
	"strings"
)

var (
	// ErrValidationFailed is matched by every *FieldError returned from Validate.
	ErrValidationFailed = errors.New("form field validation failed")

	// ErrNotValidated is raised when a typed accessor is used before a successful Validate.
	ErrNotValidated = errors.New("form field is not validated: call Validate before accessing its value")

	// ErrAlreadyConsumed is raised when a typed accessor is used twice for the same validation.
	ErrAlreadyConsumed = errors.New("form field value has already been consumed")
)

// FieldError is the outcome of a failed Validate call.
// Messages is never empty and keeps the order in which failures were detected.
type FieldError struct {
	Field    string
	Messages []string
	Failures []Failure
}

func (e *FieldError) Error() string {
	if len(e.Messages) == 0 {
		return e.Field + ": validation failed"
	}
	return e.Field + ": " + strings.Join(e.Messages, "; ")
}

// Is reports ErrValidationFailed as a match, so callers can use errors.Is
// without caring about the concrete field.
func (e *FieldError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Has reports whether a failure of the given kind was recorded.
func (e *FieldError) Has(kind Kind) bool {
	for _, f := range e.Failures {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// Errors is a list of user-facing messages that implements error.
// Secondary validators return it to reject a value with several messages at once.
type Errors []string

func (e Errors) Error() string {
	if len(e) == 0 {
		return "rejected"
	}
	return strings.Join(e, "; ")
}

// Reject builds an Errors value from the given messages.
func Reject(messages ...string) error {
	return Errors(messages)
}

// Messages extracts user-facing messages from an error returned by Validate.
// It returns nil for a nil error.
func Messages(err error) []string {
	if err == nil {
		return nil
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Messages
	}

	var list Errors
	if errors.As(err, &list) {
		return list
	}

	return []string{err.Error()}
}

// IsValidationError reports whether err carries field validation failures.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}
