package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response normalized to the message the server put in
// its error body, or a generic "HTTP <status>" when the body is unparseable.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// ConnectivityError means the server could not be reached at all (DNS
// failure, refused connection, ...). It carries the attempted URL so the
// failure can be told apart from a server-side rejection.
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("could not reach server at %s: %v", e.URL, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// errorBody is the shape backends use for error payloads; some endpoints
// use "message", older ones "error".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newError(status int, raw []byte) *Error {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return &Error{Status: status, Message: body.Message}
		}
		if body.Error != "" {
			return &Error{Status: status, Message: body.Error}
		}
	}
	return &Error{Status: status, Message: fmt.Sprintf("HTTP %d", status)}
}

// IsUnauthorized reports whether err is an authorization failure (401/403).
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsServerError reports whether err is a 5xx response.
func IsServerError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status >= 500
}

// IsConnectivity reports whether err is a transport-level failure.
func IsConnectivity(err error) bool {
	var connErr *ConnectivityError
	return errors.As(err, &connErr)
}
