package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapErrorPreservesCode(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	wrapped := WrapError(ErrServiceUnavailable, cause)

	if !errors.Is(wrapped, ErrServiceUnavailable) {
		t.Error("Expected wrapped error to match its sentinel")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("Expected wrapped error to unwrap to its cause")
	}
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "Nil", err: nil, want: http.StatusOK},
		{name: "Invalid input", err: ErrInvalidInput, want: http.StatusBadRequest},
		{name: "Expired token", err: ErrTokenExpired, want: http.StatusUnauthorized},
		{name: "Wrong token type", err: ErrWrongTokenType, want: http.StatusUnauthorized},
		{name: "Invalid refresh token", err: ErrInvalidRefreshToken, want: http.StatusUnauthorized},
		{name: "Note not found", err: ErrNoteNotFound, want: http.StatusNotFound},
		{name: "Email exists", err: ErrEmailExists, want: http.StatusConflict},
		{name: "Tag exists", err: ErrTagExists, want: http.StatusConflict},
		{name: "Service unavailable", err: ErrServiceUnavailable, want: http.StatusServiceUnavailable},
		{name: "Unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestToAuthHTTPStatusCollapsesTo401(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "User not found", err: ErrUserNotFound, want: http.StatusUnauthorized},
		{name: "Invalid credentials", err: ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "Email not confirmed", err: ErrEmailNotConfirmed, want: http.StatusUnauthorized},
		{name: "Malformed token", err: ErrTokenMalformed, want: http.StatusUnauthorized},
		{name: "Email exists", err: ErrEmailExists, want: http.StatusConflict},
		{name: "Service unavailable", err: ErrServiceUnavailable, want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToAuthHTTPStatus(tt.err); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}
