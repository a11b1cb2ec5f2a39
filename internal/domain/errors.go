package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for backend responses. APIError unwraps to one of these so
// callers can branch with errors.Is.
var (
	ErrAuthRejected  = errors.New("authentication rejected")
	ErrAccessDenied  = errors.New("access denied")
	ErrNotFound      = errors.New("not found")
	ErrEventNotFound = errors.New("event not found")
)

// APIError is a non-2xx backend response. Detail carries the backend's
// "detail" message when the body had one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Unwrap maps the status code onto the sentinel taxonomy.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrAuthRejected
	case http.StatusForbidden:
		return ErrAccessDenied
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// ErrorDetail returns the backend detail message from err, or fallback when
// err carries none.
func ErrorDetail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
