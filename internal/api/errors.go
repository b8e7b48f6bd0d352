package api

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError means the request never produced an HTTP response: DNS
// failure, refused connection, timeout, canceled context.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	// Message is the server-supplied error message, when one was present
	// in the response body.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// AuthError is a 401/403-class response: the token is missing, invalid
// or expired.
type AuthError struct {
	APIError
}

// ValidationError is a 400-class response: the server rejected the
// submitted fields.
type ValidationError struct {
	APIError
}

// classifyStatus maps a non-2xx status to the error taxonomy.
func classifyStatus(status int, message string) error {
	base := APIError{StatusCode: status, Message: message}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{base}
	case http.StatusBadRequest:
		return &ValidationError{base}
	default:
		return &APIError{StatusCode: status, Message: message}
	}
}

// IsNetworkError reports whether err is a transport failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsAuthError reports whether err is a 401/403-class server response.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsValidationError reports whether err is a 400-class server response.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ServerMessage extracts the server-supplied message from an API error
// chain, or returns "" when there is none.
func ServerMessage(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
