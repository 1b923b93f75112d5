package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNetwork marks a request that got no response at all.
var ErrNetwork = errors.New("network error")

const genericErrorMessage = "An unexpected error occurred"

// ErrorBody is the standard error envelope from both servers. The
// validation details come in two shapes: an ordered list of
// {path, message} objects, or a flat field→message map.
type ErrorBody struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

// StatusError is a response the server answered with a 4xx/5xx status.
type StatusError struct {
	Status int
	Body   ErrorBody
}

func (e *StatusError) Error() string {
	if e.Body.Error != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body.Error)
	}
	if e.Body.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body.Message)
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Error is what endpoint methods return: a human-readable message with the
// transport cause retained so Retry and tests can still classify it.
// Callers display the message; they never inspect status codes.
type Error struct {
	msg   string
	cause error
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.cause }

// normalize funnels any transport error into an *Error carrying the
// HandleAPIError message. Every endpoint method goes through this.
func normalize(err error) error {
	if err == nil {
		return nil
	}
	return &Error{msg: HandleAPIError(err), cause: err}
}

// HandleAPIError extracts a display message: the response body's error
// field, then its message field, then the error's own text, else a generic
// fallback.
func HandleAPIError(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		if se.Body.Error != "" {
			return se.Body.Error
		}
		if se.Body.Message != "" {
			return se.Body.Message
		}
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return genericErrorMessage
}

// IsNetworkError reports whether err was a no-response transport failure.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsValidationError reports whether err is a 422 or 400 response.
func IsValidationError(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Status == http.StatusUnprocessableEntity || se.Status == http.StatusBadRequest
}

// validationDetail is one entry of the list-shaped details payload.
type validationDetail struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// ValidationErrors extracts field→message pairs from a validation error
// response. Supports both server shapes; the field name for the list shape
// is the last path segment. Returns an empty map for anything else.
func ValidationErrors(err error) map[string]string {
	out := map[string]string{}

	var se *StatusError
	if !errors.As(err, &se) || len(se.Body.Details) == 0 {
		return out
	}

	var list []validationDetail
	if json.Unmarshal(se.Body.Details, &list) == nil {
		for _, d := range list {
			if len(d.Path) > 0 {
				out[d.Path[len(d.Path)-1]] = d.Message
			}
		}
		return out
	}

	var flat map[string]string
	if json.Unmarshal(se.Body.Details, &flat) == nil {
		for field, msg := range flat {
			out[field] = msg
		}
	}
	return out
}
