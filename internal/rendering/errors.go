// Package rendering exports resumes to PDF, DOCX, plain text and HTML.
package rendering

import (
	"errors"
	"fmt"
)

// ErrMissingName is returned before any rendering work when the document has no full name
var ErrMissingName = errors.New("add your full name before exporting")

// UnsupportedKindError is returned for an unknown export kind
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported export kind %q (want pdf, docx, txt or html)", e.Kind)
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
