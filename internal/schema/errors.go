package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequired marks a blank mandatory field
	ErrMissingRequired = errors.New("required field is blank")
	// ErrInvalidInteger marks a count field holding non-numeric text
	ErrInvalidInteger = errors.New("value is not an integer")
)

// MalformedInputError reports a form that was not filled in as expected
type MalformedInputError struct {
	Field Field
	Raw   string
	Err   error
}

// Error implements the error interface
func (e *MalformedInputError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("malformed input in %s (%q): %v", e.Field.Name(), e.Raw, e.Err)
	}
	return fmt.Sprintf("malformed input in %s: %v", e.Field.Name(), e.Err)
}

// Unwrap exposes the sentinel cause
func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
