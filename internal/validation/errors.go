// Package validation checks resume documents against content and length constraints.
package validation

import "fmt"

// Error is returned when a check cannot run at all. A check that runs and finds
// problems reports them as violations instead.
type Error struct {
	Check   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Check != "" {
		msg = e.Check + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", msg, e.Cause)
	}
	return "validation error: " + msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// FileReadError is returned when a rendered file cannot be read back for checking
type FileReadError struct {
	Path  string
	Cause error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Cause)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}
