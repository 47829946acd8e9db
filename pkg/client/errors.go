package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized covers rejected credentials and invalidated sessions.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden covers operations the caller lacks rights for, such as
	// mutating a contact they do not own.
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
	// ErrConflict covers duplicate shares and duplicate signup emails.
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	// ErrSelfShare is raised locally, before any request is issued, when a
	// contact would be shared with its own owner.
	ErrSelfShare = errors.New("cannot share a contact with yourself")
)

// APIError is a non-2xx response from the server. It matches the sentinel
// errors above under errors.Is, so callers can branch on the class while
// still surfacing the server's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == 401
	case ErrForbidden:
		return e.Status == 403
	case ErrNotFound:
		return e.Status == 404
	case ErrConflict:
		return e.Status == 409
	case ErrValidation:
		return e.Status == 400
	}
	return false
}

// NetworkError is a transport failure: the request never produced a
// response. Retrying is the user's call; the client never retries.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
