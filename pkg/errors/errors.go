package errors

import "net/http"

// HTTPError is an error carrying the status and message returned to API clients.
type HTTPError struct {
	StatusCode int
	Code       int
	Message    string
}

// NewHTTPError creates an HTTPError. The error code mirrors the status code.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{StatusCode: status, Code: status, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ValidationError describes a request field that failed validation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned when a request fails with per-field messages.
type ValidationErrors struct {
	Message string
	Fields  []ValidationError
}

func (e *ValidationErrors) Error() string {
	return e.Message
}

// StatusCode implements the response contract for validation failures.
func (e *ValidationErrors) StatusCode() int {
	return http.StatusBadRequest
}
