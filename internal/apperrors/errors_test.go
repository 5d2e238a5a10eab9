package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"wrapped not found", fmt.Errorf("feeding abc: %w", ErrNotFound), http.StatusNotFound},
		{"validation", Validation("side is required"), http.StatusBadRequest},
		{"internal", Internal("list feedings", errors.New("disk full")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("create feeding", cause)

	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal in chain")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain")
	}
	if got := PublicMessage(err); got != "internal server error" {
		t.Fatalf("PublicMessage = %q", got)
	}
}

func TestValidationMessage(t *testing.T) {
	err := Validation("invalid side %q", "UP")
	if got, want := PublicMessage(err), `invalid input: invalid side "UP"`; got != want {
		t.Fatalf("PublicMessage = %q, want %q", got, want)
	}
}
