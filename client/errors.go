package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired signals that the refresh exchange itself was rejected
// and the stored session is no longer usable. Callers must log the user out.
var ErrSessionExpired = errors.New("session expired, please login again")

// APIError is returned when the server answered with a non-2xx status.
// The raw response body is kept so callers can extract a message from it.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected HTTP status: %d %s", e.Status, http.StatusText(e.Status))
}

// TransportError is returned when the request never produced an HTTP
// response (connection failure, timeout, cancelled context).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("request failed: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is returned when a response body could not be decoded into
// the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("failed to decode response: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// genericMessage is shown when no message could be extracted from an error.
const genericMessage = "Request failed. Please try again."

// UserMessage maps any error returned by this package to a human-readable
// message suitable for display. It never returns an empty string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrSessionExpired) {
		return "Your session has expired. Please login again."
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := extractAPIMessage(apiErr.Body); msg != "" {
			return msg
		}
		return genericMessage
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return "Could not reach the server. Please check your connection."
	}
	return genericMessage
}

// extractAPIMessage probes the known error body shapes in order:
// an array of errors, a nested error object, then a top-level message.
// It returns an empty string when no shape matches.
func extractAPIMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var asList []struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &asList); err == nil && len(asList) > 0 && asList[0].Message != "" {
		return asList[0].Message
	}

	var asNested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &asNested); err == nil && asNested.Error.Message != "" {
		return asNested.Error.Message
	}

	var asFlat struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &asFlat); err == nil && asFlat.Message != "" {
		return asFlat.Message
	}

	return ""
}
