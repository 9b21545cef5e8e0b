package errors

import "net/http"

// APIError is an error carrying the HTTP status it should surface with. The
// wire shape is always {"error": message}; the status defaults to 500 for
// plain errors.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// New creates a new APIError.
func New(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// ErrValidation creates a 400 error for a rejected request field.
func ErrValidation(message string) *APIError {
	return New(http.StatusBadRequest, message)
}

// ErrInvalidRequest creates a 400 error for an unparseable request body.
func ErrInvalidRequest(message string) *APIError {
	return New(http.StatusBadRequest, message)
}

// ErrorResponse is the JSON error body: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}
