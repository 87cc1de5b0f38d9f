package clierr

import (
	"errors"
	"testing"
)

func TestErrorMessageAndUnwrap(t *testing.T) {
	underlying := errors.New("boom")
	err := New(Unauthorized, "Session expired.", underlying)

	if err.Error() != "Session expired." {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, underlying) {
		t.Error("expected Unwrap to expose the underlying error")
	}
	if err.Type != Unauthorized {
		t.Errorf("unexpected type: %q", err.Type)
	}
}

func TestErrorWithoutUnderlying(t *testing.T) {
	err := New(Validation, "phone number cannot be empty", nil)
	if errors.Unwrap(err) != nil {
		t.Error("expected no underlying error")
	}
}
