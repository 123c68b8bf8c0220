package optimize

import "fmt"

// APICallError is returned when the model could not be reached or refused the request
type APICallError struct {
	Operation string
	Cause     error
}

func (e *APICallError) Error() string {
	return fmt.Sprintf("%s: AI service call failed: %v", e.Operation, e.Cause)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError is returned when the reply is not valid JSON or does not decode into the result type
type ParseError struct {
	Operation string
	Cause     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse AI response: %v", e.Operation, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// SchemaError is returned when the reply is well-formed JSON of the wrong shape
type SchemaError struct {
	Operation string
	Cause     error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: AI response does not match the expected schema: %v", e.Operation, e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}
