package transportapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// APIError is returned for any failed request. Status is the HTTP status,
// 408 for timeouts, or 500 when no response was received.
type APIError struct {
	Status  int
	Message string
	Body    []byte
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport api: %s (status %d): %v", e.Message, e.Status, e.Err)
	}
	return fmt.Sprintf("transport api: %s (status %d)", e.Message, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// transportError classifies an error from http.Client.Do
func transportError(err error) *APIError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &APIError{Status: http.StatusRequestTimeout, Message: "Request timeout", Err: err}
	}
	return &APIError{Status: http.StatusInternalServerError, Message: "request failed", Err: err}
}
