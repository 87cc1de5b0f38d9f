package client

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

// TestUserMessage_Extraction walks the known error body shapes.
func TestUserMessage_Extraction(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"array of errors", `[{"message":"Invalid phone"}]`, "Invalid phone"},
		{"nested error object", `{"error":{"message":"Token expired"}}`, "Token expired"},
		{"top-level message", `{"message":"Server error"}`, "Server error"},
		{"unknown shape", `{}`, genericMessage},
		{"empty body", ``, genericMessage},
		{"array takes precedence", `[{"message":"first"},{"message":"second"}]`, "first"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := &APIError{Status: http.StatusBadRequest, Body: []byte(tc.body)}
			if got := UserMessage(err); got != tc.want {
				t.Errorf("UserMessage(%s) = %q, expected %q", tc.body, got, tc.want)
			}
		})
	}
}

// TestUserMessage_NonAPIErrors covers the remaining error kinds.
func TestUserMessage_NonAPIErrors(t *testing.T) {
	if got := UserMessage(nil); got != "" {
		t.Errorf("expected empty message for nil error, got %q", got)
	}
	if got := UserMessage(ErrSessionExpired); got != "Your session has expired. Please login again." {
		t.Errorf("unexpected session-expired message: %q", got)
	}
	if got := UserMessage(fmt.Errorf("wrapped: %w", ErrSessionExpired)); got != "Your session has expired. Please login again." {
		t.Errorf("unexpected wrapped session-expired message: %q", got)
	}
	transport := &TransportError{Err: errors.New("dial tcp: refused")}
	if got := UserMessage(transport); got != "Could not reach the server. Please check your connection." {
		t.Errorf("unexpected transport message: %q", got)
	}
	if got := UserMessage(errors.New("anything else")); got != genericMessage {
		t.Errorf("expected the generic fallback, got %q", got)
	}
}

// TestIsUnauthorized distinguishes 401 from other statuses and kinds.
func TestIsUnauthorized(t *testing.T) {
	if !IsUnauthorized(&APIError{Status: http.StatusUnauthorized}) {
		t.Error("a 401 APIError should be unauthorized")
	}
	if !IsUnauthorized(fmt.Errorf("call failed: %w", &APIError{Status: http.StatusUnauthorized})) {
		t.Error("a wrapped 401 APIError should be unauthorized")
	}
	if IsUnauthorized(&APIError{Status: http.StatusForbidden}) {
		t.Error("a 403 APIError should not be unauthorized")
	}
	if IsUnauthorized(&TransportError{Err: errors.New("timeout")}) {
		t.Error("a transport error should not be unauthorized")
	}
	if IsUnauthorized(nil) {
		t.Error("nil should not be unauthorized")
	}
}

// TestAPIErrorString checks the APIError message format.
func TestAPIErrorString(t *testing.T) {
	err := &APIError{Status: http.StatusBadGateway}
	if err.Error() != "unexpected HTTP status: 502 Bad Gateway" {
		t.Errorf("unexpected error string: %q", err.Error())
	}
}
