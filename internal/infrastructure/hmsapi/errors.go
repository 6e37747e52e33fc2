package hmsapi

import (
	"net/http"

	"github.com/hospital-ms/portal/internal/core/domain"
)

const msgUnreachable = "Cannot connect to server. Please ensure the backend is running."

// Error is a failed API call. Status is 0 when no response was received.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "hmsapi: " + e.Message + ": " + e.Err.Error()
	}
	return "hmsapi: " + e.Message
}

// Unwrap exposes domain.ErrUpstream so callers can match any API failure.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{domain.ErrUpstream, e.Err}
	}
	return []error{domain.ErrUpstream}
}

func statusMessage(code int) string {
	switch code {
	case http.StatusNotFound:
		return "API endpoint not found. Please check if the backend is running correctly."
	case http.StatusInternalServerError:
		return "Server error. Please try again later."
	case http.StatusForbidden:
		return "Access forbidden. Please check your permissions."
	case http.StatusUnauthorized:
		return "Unauthorized. Please login again."
	default:
		return http.StatusText(code)
	}
}
