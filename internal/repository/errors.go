package repository

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the gateway. The set is closed: every failure is
// one of these sentinels, a *ServerError, a *DecodeError, or ErrAuthentication.
const (
	ErrInvalidURL      = RepositoryError("invalid URL")
	ErrInvalidResponse = RepositoryError("invalid response")
	ErrNoContent       = RepositoryError("no content")
	ErrBadRequest      = RepositoryError("bad request")
	ErrNotFound        = RepositoryError("not found")
	ErrAuthentication  = RepositoryError("authentication failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ServerError is any non-2xx status other than 400 and 404.
type ServerError struct {
	Code int
	Body string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d)", e.Code)
}

// DecodeError reports a payload that does not match the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decoding failed: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *ServerError
	switch {
	case errors.As(err, &se):
		return se.Code
	case errors.Is(err, ErrBadRequest):
		return 400
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrNoContent):
		return 204
	}
	return 0
}

// Message renders err for display next to a list or a form.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var (
		se *ServerError
		de *DecodeError
	)
	switch {
	case errors.As(err, &se):
		return fmt.Sprintf("The server returned an error (code %d).", se.Code)
	case errors.As(err, &de):
		return "The server response could not be read."
	case errors.Is(err, ErrInvalidURL):
		return "The server address is invalid."
	case errors.Is(err, ErrInvalidResponse):
		return "The server could not be reached."
	case errors.Is(err, ErrNoContent):
		return "The server returned no data."
	case errors.Is(err, ErrBadRequest):
		return "The request was rejected by the server."
	case errors.Is(err, ErrNotFound):
		return "The requested item no longer exists."
	case errors.Is(err, ErrAuthentication):
		return err.Error()
	}
	return err.Error()
}
