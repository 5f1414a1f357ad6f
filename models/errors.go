package models

import "errors"

var (
	// ErrNotConfigured is returned when the instance has not been configured.
	ErrNotConfigured = errors.New("instance not configured")

	// ErrVAPIDKeysExist is returned when asked to generate VAPID keys for an
	// instance that already has them, without asking to regenerate them.
	ErrVAPIDKeysExist = errors.New("instance already has VAPID keys")
)

// ValidationError reports a missing or malformed field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func required(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}
