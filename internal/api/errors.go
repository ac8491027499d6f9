package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents malformed requests (400)
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound represents unknown models or routes (404)
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeInternal represents internal server errors (500)
	ErrorTypeInternal ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap allows error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not-found error for the named resource
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

// ErrorHandler renders every error as {"error": {"type", "message"}}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		var fe *fiber.Error
		switch {
		case errors.As(err, &fe) && fe.Code == fiber.StatusNotFound:
			appErr = &AppError{Type: ErrorTypeNotFound, Message: fe.Message, StatusCode: fe.Code}
		case errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError:
			appErr = &AppError{Type: ErrorTypeValidation, Message: fe.Message, StatusCode: fe.Code}
		default:
			fiberlog.Errorf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
			appErr = &AppError{Type: ErrorTypeInternal, Message: "internal server error", StatusCode: fiber.StatusInternalServerError, Cause: err}
		}
	}
	return c.Status(appErr.StatusCode).JSON(fiber.Map{"error": appErr})
}
