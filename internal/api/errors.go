package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rgordon/item-api/internal/domain"
	"github.com/rgordon/item-api/internal/processor"
	"github.com/rgordon/item-api/internal/store"
)

// Validation messages for the item fields, mirrored in both the request
// struct validation and the domain-level fallback.
const (
	msgNameRequired  = "Name is required"
	msgEmailRequired = "Email is required"
	msgEmailInvalid  = "Email must be a valid email address"
	msgStatusInvalid = "Status must be one of: NEW, IN_PROGRESS, PROCESSED, COMPLETED, FAILED"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Batch-level processing failures are server errors
	case errors.Is(err, processor.ErrTimeout),
		errors.Is(err, processor.ErrInterrupted),
		errors.Is(err, processor.ErrExecution):
		return http.StatusInternalServerError

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// SafeErrorMessage returns a sanitized, user-friendly error message based on
// the error type. This prevents leaking sensitive internal details.
func SafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case store.IsNotFoundError(err):
		return "Item not found"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid item data"

	case errors.Is(err, processor.ErrTimeout),
		errors.Is(err, processor.ErrInterrupted),
		errors.Is(err, processor.ErrExecution):
		return "Error processing items"

	default:
		return "An unexpected error occurred"
	}
}

// ValidationErrorMap converts a validation failure from the request struct
// validator into per-field messages keyed by JSON field name.
func ValidationErrorMap(err error) map[string]string {
	fields := map[string]string{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fields["body"] = "Validation error"
		return fields
	}

	for _, fieldErr := range validationErrors {
		fields[fieldErr.Field()] = validationMessage(fieldErr)
	}
	return fields
}

// validationMessage renders a single field error as a human-readable message.
func validationMessage(fieldErr validator.FieldError) string {
	label := capitalize(fieldErr.Field())

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return msgEmailInvalid
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s",
			label, strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// DomainValidationErrorMap converts a domain.Item validation error into the
// same per-field message shape as ValidationErrorMap. The domain check runs
// after struct validation and catches cases the request tags cannot express,
// such as the stricter email format.
func DomainValidationErrorMap(err error) map[string]string {
	switch {
	case errors.Is(err, domain.ErrItemNameEmpty):
		return map[string]string{"name": msgNameRequired}
	case errors.Is(err, domain.ErrItemStatusInvalid):
		return map[string]string{"status": msgStatusInvalid}
	case errors.Is(err, domain.ErrItemEmailEmpty):
		return map[string]string{"email": msgEmailRequired}
	case errors.Is(err, domain.ErrItemEmailInvalid):
		return map[string]string{"email": msgEmailInvalid}
	default:
		return map[string]string{"body": "Validation error"}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
