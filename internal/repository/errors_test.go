package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"server error", &ServerError{Code: 503}, 503},
		{"wrapped server error", fmt.Errorf("list sessions: %w", &ServerError{Code: 500}), 500},
		{"bad request", fmt.Errorf("update: %w", ErrBadRequest), 400},
		{"not found", ErrNotFound, 404},
		{"no content", ErrNoContent, 204},
		{"other", errors.New("boom"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	if Message(nil) != "" {
		t.Error("Expected empty message for nil error")
	}
	if got := Message(&ServerError{Code: 502}); !strings.Contains(got, "502") {
		t.Errorf("Expected status code in message, got %q", got)
	}

	var syntaxErr *json.SyntaxError
	decodeErr := &DecodeError{Err: json.Unmarshal([]byte("{"), &struct{}{})}
	if !errors.As(decodeErr, &syntaxErr) {
		t.Error("DecodeError must unwrap to the JSON error")
	}
	if Message(decodeErr) == decodeErr.Error() {
		t.Error("Expected a user-facing message for decode errors")
	}

	authErr := fmt.Errorf("%w: invalid password", ErrAuthentication)
	if got := Message(authErr); got != "authentication failed: invalid password" {
		t.Errorf("Unexpected auth message %q", got)
	}
}
