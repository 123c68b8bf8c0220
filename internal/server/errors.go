package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/optimize"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable is returned when a route's backing service is not configured
type ErrUnavailable struct {
	Service string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured on this server", e.Service)
}

// ErrTooLarge is returned when a request body exceeds its limit
type ErrTooLarge struct {
	Limit int64
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		fieldErrs      validator.ValidationErrors
		schemaErr      *schemas.ValidationError
		kindErr        *rendering.UnsupportedKindError
		unsupportedErr *ingestion.UnsupportedFileError
		extractionErr  *ingestion.ExtractionError
		fetchErr       *fetch.Error
		apiErr         *optimize.APICallError
		parseErr       *optimize.ParseError
		replySchemaErr *optimize.SchemaError
		unavailableErr *ErrUnavailable
		tooLargeErr    *ErrTooLarge
		maxBytesErr    *http.MaxBytesError
	)

	switch {
	case err == nil:
		return http.StatusOK
	// upstream failures may wrap a schema error, so they are matched first
	case errors.As(err, &fetchErr), errors.As(err, &apiErr), errors.As(err, &parseErr),
		errors.As(err, &replySchemaErr):
		return http.StatusBadGateway
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs), errors.As(err, &schemaErr),
		errors.As(err, &kindErr):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &tooLargeErr), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupportedErr):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, rendering.ErrMissingName), errors.As(err, &extractionErr),
		errors.Is(err, ingestion.ErrEmptyPosting):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
