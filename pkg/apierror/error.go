package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Error represents a structured API error response.
type Error struct {
	StatusCode int          `json:"-"`
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// WithDetails adds field-level error details.
func (e *Error) WithDetails(details ...FieldError) *Error {
	e.Details = details
	return e
}

// ToJSON converts the error to JSON bytes.
func (e *Error) ToJSON() []byte {
	response := map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"code":    e.Code,
			"message": e.Message,
		},
	}

	if len(e.Details) > 0 {
		response["error"].(map[string]interface{})["details"] = e.Details
	}

	data, _ := json.Marshal(response)
	return data
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
	}
}

// ValidationError creates a 400 error with validation details.
func ValidationError(message string, details ...FieldError) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    message,
		Details:    details,
	}
}

// NotFound creates a 404 Not Found error.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    message,
	}
}

// UnsupportedFormat creates a 400 error for an unrecognized export format.
// The message carries the offending value and the accepted values.
func UnsupportedFormat(value string, valid []string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "UNSUPPORTED_FORMAT",
		Message:    fmt.Sprintf("Unsupported format: %s. Available formats: %s", value, strings.Join(valid, ", ")),
	}
}

// NothingToExport creates a 400 error for an export over an empty collection.
func NothingToExport() *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "NOTHING_TO_EXPORT",
		Message:    "No entities to export",
	}
}

// DeliveryFailed creates a 502 error for a failed outbound delivery.
func DeliveryFailed(message string) *Error {
	if message == "" {
		message = "Failed to deliver export payload to mock service"
	}
	return &Error{
		StatusCode: http.StatusBadGateway,
		Code:       "DELIVERY_FAILED",
		Message:    message,
	}
}

// ExportFailed creates a 500 error for an unexpected export fault.
// Internal detail stays in the logs, not in the message.
func ExportFailed() *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       "EXPORT_FAILED",
		Message:    "Failed to export data",
	}
}

// TooManyRequests creates a 429 Too Many Requests error.
func TooManyRequests(message string) *Error {
	if message == "" {
		message = "Rate limit exceeded"
	}
	return &Error{
		StatusCode: http.StatusTooManyRequests,
		Code:       "TOO_MANY_REQUESTS",
		Message:    message,
	}
}

// InternalError creates a 500 Internal Server Error.
func InternalError(message string) *Error {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    message,
	}
}
