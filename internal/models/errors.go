package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError. The HTTP layer maps these to statuses;
// they are not exposed in responses.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeInvalidFileType     = "INVALID_FILE_TYPE"
	CodeUploadFailed        = "UPLOAD_FAILED"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInternal            = "INTERNAL_ERROR"
)

// ErrorResponse is the standardized API error body: a single message field.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AppError is a typed application error.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewConstraintViolationError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeConstraintViolation,
		Message: message,
		Err:     err,
	}
}

func NewInvalidFileTypeError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidFileType,
		Message: message,
	}
}

func NewUploadFailedError(err error) *AppError {
	return &AppError{
		Code:    CodeUploadFailed,
		Message: "Failed to upload file",
		Err:     err,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError writes the standardized error response. Internal detail
// (the wrapped Err) is never serialized.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	msg := err.Error()
	if appErr, ok := err.(*AppError); ok {
		msg = appErr.Message
	}
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}
