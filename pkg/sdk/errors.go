package sdk

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the server answers with HTTP 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRejected is returned when the server answers with a non-success envelope code.
	ErrRejected = errors.New("request rejected by server")
	// ErrNotLoggedIn is returned by token stores when no usable token is present.
	ErrNotLoggedIn = errors.New("not logged in")
)

// APIError describes a failed API call. It is produced once, at the client
// boundary, so callers never inspect envelope codes themselves.
type APIError struct {
	// Op is the method and path of the call, e.g. "GET /roles".
	Op string
	// StatusCode is the HTTP status, or 0 when the request never completed.
	StatusCode int
	// Code is the envelope code returned by the server, if any.
	Code int
	// Message is the server supplied message, if any.
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err was caused by an HTTP 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
