package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionUnresolved  = errors.New("session not resolved yet")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnknownSection     = errors.New("unknown console section")
	ErrSessionStore       = errors.New("session store failure")
)

// APIError is a non-2xx answer from the platform API. Detail carries the
// server's "detail" field when the body had one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("platform api: status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("platform api: status %d", e.Status)
}

// Is lets errors.Is(err, ErrUnauthorized) match a 401 answer.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// ErrorDetail returns the server-provided detail carried by err, if any.
func ErrorDetail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
