package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, or exists but is owned by another user.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned for owner-scoped operations invoked without an
// authenticated session. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError names the field and the rule a record violated.
// errors.Is(err, ErrValidation) reports true for every ValidationError, so
// callers that only care about the category can keep using the sentinel.
type ValidationError struct {
	// Field is the JSON name of the offending field, e.g. "end_date".
	Field string
	// Rule is a stable identifier for the violated rule, e.g. "end_date_before_start_date".
	Rule string
	// Message is the user-facing explanation.
	Message string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Message
}

// Is makes errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// invalid builds a *ValidationError. Kept unexported so every rule identifier
// is declared next to the check that produces it.
func invalid(field, rule, message string) error {
	return &ValidationError{Field: field, Rule: rule, Message: message}
}
