package invoice

import (
	ierr "github.com/billaged/billaged/internal/errors"
)

// NewValidationError reports a user-correctable failure on a single field.
func NewValidationError(field, message string) error {
	return ierr.NewError("invoice validation failed").
		WithHintf("%s: %s", field, message).
		WithReportableDetails(map[string]any{
			"field":   field,
			"message": message,
		}).
		Mark(ierr.ErrValidation)
}

// NewInvariantViolation reports a derived-state inconsistency. These signal
// a defect in the calling code, never bad user input, and must not be
// rendered as user-facing validation messages.
func NewInvariantViolation(field, message string, expected, actual any) error {
	return ierr.NewError("invoice invariant violated").
		WithHintf("%s: %s", field, message).
		WithReportableDetails(map[string]any{
			"field":    field,
			"expected": expected,
			"actual":   actual,
		}).
		Mark(ierr.ErrInvariantViolation)
}
