package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Backend errors, one per failure class
var (
	ErrUnavailable  = errors.New("backend unavailable")
	ErrUnauthorized = errors.New("backend session rejected")
	ErrForbidden    = errors.New("backend access denied")
	ErrNotFound     = errors.New("backend resource not found")
	ErrBadRequest   = errors.New("backend rejected the request")
	ErrConflict     = errors.New("backend conflict")
	ErrServer       = errors.New("backend server error")
)

// APIError is a non-2xx backend response
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

// Unwrap maps the status to its sentinel so callers can use errors.Is
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status >= 500:
		return ErrServer
	}
	return ErrBadRequest
}

// Message returns the backend's own message for err, or "" when it sent none
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// UserMessage is Message with a fallback suitable for a flash banner
func UserMessage(err error) string {
	if msg := Message(err); msg != "" {
		return msg
	}
	switch {
	case errors.Is(err, ErrUnavailable):
		return "The server could not be reached. Please try again."
	case errors.Is(err, ErrNotFound):
		return "The requested record was not found."
	case errors.Is(err, ErrForbidden):
		return "You are not allowed to perform this action."
	}
	return "Something went wrong. Please try again."
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
