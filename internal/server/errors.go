package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-assistant/internal/pipeline"
	"github.com/jonathan/job-assistant/internal/schemas"
)

// ErrStoreUnavailable is returned by routes that need the database when none is configured.
var ErrStoreUnavailable = errors.New("database is not configured")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a stored resource does not exist.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		notFoundErr   *ErrNotFound
		schemaErr     *schemas.ValidationError
		loadErr       *schemas.SchemaLoadError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &loadErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, pipeline.ErrScrapeFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts validator output into an *ErrValidation for the first failing field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_without":
		return &ErrValidation{Field: field, Message: "is required"}
	case "uuid":
		return &ErrValidation{Field: field, Message: "must be a UUID"}
	case "oneof":
		return &ErrValidation{Field: field, Message: "must be one of " + fe.Param()}
	case "min", "max":
		return &ErrValidation{Field: field, Message: fmt.Sprintf("length must satisfy %s=%s", fe.Tag(), fe.Param())}
	default:
		return &ErrValidation{Field: field, Message: "failed " + fe.Tag()}
	}
}
