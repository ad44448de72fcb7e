package parking

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error exposes methods useful for categorizing failures.
type Error interface {
	error

	// Temporary returns true if the failure might be the result of a
	// transient condition, such as the service restarting.
	Temporary() bool
}

var (
	// ErrNoCredential indicates an operation that requires authorization
	// was attempted without a stored bearer token. The request is rejected
	// locally; nothing is sent to the service.
	ErrNoCredential = errors.New("no bearer token available; log in first")
	// ErrBadResponse indicates the service returned a success status but
	// the body did not match the resource's expected shape.
	ErrBadResponse = errors.New("invalid response from service")
)

// StatusError is returned when the service answers with a non-2xx status.
// Message carries the response body verbatim, if any.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	}
	return strings.TrimSpace(e.Message)
}

func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusServiceUnavailable ||
		e.Code == http.StatusGatewayTimeout ||
		e.Code == http.StatusRequestTimeout
}

// RequestError wraps a transport-level failure: the request could not be
// sent or the response could not be read.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return "request failed: " + e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Temporary() bool {
	return true
}

// PartialInvalidationError indicates a mutation succeeded on the service
// but at least one dependent cached collection could not be refreshed. The
// listed kinds must be treated as stale until a read succeeds.
type PartialInvalidationError struct {
	Stale []Kind
	Err   error
}

func (e *PartialInvalidationError) Error() string {
	names := make([]string, len(e.Stale))
	for i, k := range e.Stale {
		names[i] = string(k)
	}
	return fmt.Sprintf("mutation succeeded but stale collections remain (%s): %s",
		strings.Join(names, ", "), e.Err)
}

func (e *PartialInvalidationError) Unwrap() error {
	return e.Err
}

func (e *PartialInvalidationError) Temporary() bool {
	return true
}

// IsAuthorizationFailure reports whether err is a 401 from the service.
func IsAuthorizationFailure(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusUnauthorized
}

// IsNotFound reports whether err indicates a referenced id does not exist.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// IsValidation reports whether the service rejected a payload, e.g. a
// duplicate license number on check-in.
func IsValidation(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == http.StatusBadRequest ||
		se.Code == http.StatusConflict ||
		se.Code == http.StatusUnprocessableEntity
}

// IsPartialInvalidation reports whether a mutation succeeded while leaving
// part of the cache stale.
func IsPartialInvalidation(err error) bool {
	var pe *PartialInvalidationError
	return errors.As(err, &pe)
}

// Temporary reports whether err is classified as possibly transient.
func Temporary(err error) bool {
	var te Error
	return errors.As(err, &te) && te.Temporary()
}
