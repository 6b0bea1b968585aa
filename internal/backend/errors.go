package backend

import (
	"errors"
	"fmt"
)

// Common backend client errors
var (
	ErrConnection = errors.New("connection failed")
	ErrNotFound   = errors.New("record not found")
)

// GenericFailureMessage is shown when the backend gives no usable detail
const GenericFailureMessage = "Something went wrong. Please try again."

// ConnectionFailureMessage is shown when no response was received at all
const ConnectionFailureMessage = "Unable to reach the server. Please check your connection."

// APIError represents an error reported by the remote backend
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new backend API error
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// UserMessage maps an error from the client into the message shown to the
// user: the backend's structured detail when present, a connection hint when
// no response was received, otherwise a generic failure line.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrConnection) {
		return ConnectionFailureMessage
	}
	return GenericFailureMessage
}
