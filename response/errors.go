package response

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrUnsupportedContentType indicates a non-JSON body where JSON was expected
	ErrUnsupportedContentType = errors.New("unsupported content type")
	// ErrMalformedBody indicates the body is not valid JSON
	ErrMalformedBody = errors.New("malformed JSON body")
	// ErrMalformedDateTime indicates a DateTime value is not an ISO-8601 timestamp
	ErrMalformedDateTime = errors.New("malformed date-time value")
	// ErrTypeMismatch indicates the parsed value does not have the declared shape
	ErrTypeMismatch = errors.New("value does not match return type")
	// ErrNoTempDir indicates a file download was attempted without a temp directory
	ErrNoTempDir = errors.New("no temp directory configured")
)

// APIError is returned when the server answers with a non-2xx status
type APIError struct {
	StatusCode int
	Message    string
	Header     http.Header
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error: status %d: %s: %s", e.StatusCode, e.Message, e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsServerError checks if the server failed to handle the request
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// AsAPIError extracts an *APIError from an error chain
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// MismatchError describes where a value failed to match its return type
type MismatchError struct {
	Path     string
	Expected string
	Got      any
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("value at %s: expected %s, got %T", e.Path, e.Expected, e.Got)
}

func (e *MismatchError) Unwrap() error {
	return ErrTypeMismatch
}
