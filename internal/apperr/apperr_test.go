package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "topic", Label: "Topic"}
	if got := err.Error(); got != "Topic is required" {
		t.Fatalf("Error() = %q", got)
	}

	err = &ValidationError{Field: "num_pairs", Label: "Number of Pairs", Reason: "must be a number"}
	if got := err.Error(); got != "Number of Pairs must be a number" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestIsValidation_Wrapped(t *testing.T) {
	err := fmt.Errorf("submit: %w", &ValidationError{Field: "model", Label: "Model"})
	if !IsValidation(err) {
		t.Fatalf("expected wrapped ValidationError to be detected")
	}
	if IsValidation(errors.New("plain")) {
		t.Fatalf("plain error should not be a ValidationError")
	}
}

func TestBackendError_DetailAndFallback(t *testing.T) {
	if got := (&BackendError{StatusCode: 422, Detail: "bad schema"}).Error(); got != "bad schema" {
		t.Fatalf("Error() = %q", got)
	}
	if got := (&BackendError{StatusCode: 500}).Error(); got != "backend error (status 500)" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("x: %w", &BackendError{StatusCode: http.StatusNotFound})) {
		t.Fatalf("expected 404 to be not found")
	}
	if IsNotFound(&BackendError{StatusCode: http.StatusInternalServerError}) {
		t.Fatalf("500 is not a not-found")
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	base := errors.New("connection refused")
	err := &NetworkError{Op: "POST /generate/sft", Err: base}
	if !errors.Is(err, base) {
		t.Fatalf("expected NetworkError to unwrap to base error")
	}
	if !IsNetwork(fmt.Errorf("wrap: %w", err)) {
		t.Fatalf("expected IsNetwork on wrapped error")
	}
}

func TestUserf(t *testing.T) {
	err := Userf("unknown recipe %q", "nope")
	if !IsUser(err) {
		t.Fatalf("expected user error")
	}
	if err.Error() != `unknown recipe "nope"` {
		t.Fatalf("Error() = %q", err.Error())
	}
}
