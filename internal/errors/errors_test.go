package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "User not found",
			},
			want: "User not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeUnavailable,
				Message: "Network error. Please try again.",
				Cause:   errors.New("dial tcp: connection refused"),
			},
			want: "Network error. Please try again.: dial tcp: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := Unavailable(context.DeadlineExceeded, "Network error. Please try again.")

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected errors.Is to find the wrapped cause")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"not found", NotFound("User not found"), ErrCodeNotFound},
		{"not foundf", NotFoundf("booking %d", 4), ErrCodeNotFound},
		{"validation", Validation("Please fill in all required fields"), ErrCodeValidation},
		{"validationf", Validationf("%s is required", "email"), ErrCodeValidation},
		{"unauthorized", Unauthorized("Invalid or missing token"), ErrCodeUnauthorized},
		{"upstream", Upstream(500, "Failed to search flights"), ErrCodeUpstream},
		{"rate limited", RateLimited("slow down"), ErrCodeRateLimited},
		{"internal", Internal("boom"), ErrCodeInternal},
		{"internalf", Internalf("boom %d", 1), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Errorf("expected a message")
			}
		})
	}
}

func TestUpstream_CarriesStatus(t *testing.T) {
	err := Upstream(404, "User not found")
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "Email is required")
	if err.Field != "email" {
		t.Errorf("Field = %v, want email", err.Field)
	}
	if GetField(err) != "email" {
		t.Errorf("GetField() = %v, want email", GetField(err))
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("redis down")
	err := Wrap(cause, ErrCodeInternal, "failed to save session")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause to be preserved")
	}

	wrapped := Wrapf(cause, ErrCodeTimeout, "ping %s", "redis")
	if wrapped.Message != "ping redis" {
		t.Errorf("Message = %q, want %q", wrapped.Message, "ping redis")
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "message"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestIsHelpers(t *testing.T) {
	wrappedUnauthorized := fmt.Errorf("load profile: %w", Unauthorized("Invalid or missing token"))

	tests := []struct {
		name string
		fn   func(error) bool
		err  error
		want bool
	}{
		{"unauthorized through fmt wrap", IsUnauthorized, wrappedUnauthorized, true},
		{"unauthorized plain error", IsUnauthorized, errors.New("x"), false},
		{"not found", IsNotFound, NotFound("x"), true},
		{"validation", IsValidation, Validation("x"), true},
		{"upstream", IsUpstream, Upstream(500, "x"), true},
		{"unavailable", IsUnavailable, Unavailable(errors.New("x"), "y"), true},
		{"rate limited", IsRateLimited, RateLimited("x"), true},
		{"internal", IsInternal, Internal("x"), true},
		{"timeout", IsTimeout, Wrap(errors.New("x"), ErrCodeTimeout, "t"), true},
		{"canceled", IsCanceled, Wrap(errors.New("x"), ErrCodeCanceled, "c"), true},
		{"nil", IsNotFound, nil, false},
		{"network: unavailable", IsNetworkError, Unavailable(errors.New("dial"), "y"), true},
		{"network: timeout", IsNetworkError, Wrap(errors.New("x"), ErrCodeTimeout, "t"), true},
		{"network: canceled", IsNetworkError, Wrap(errors.New("x"), ErrCodeCanceled, "c"), true},
		{"network: rate limited", IsNetworkError, RateLimited("x"), true},
		{"network: upstream answered", IsNetworkError, Upstream(500, "x"), false},
		{"network: unauthorized", IsNetworkError, Unauthorized("x"), false},
		{"network: plain error", IsNetworkError, errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(Upstream(502, "bad gateway")); got != ErrCodeUpstream {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeUpstream)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestMessageOr(t *testing.T) {
	if got := MessageOr(Upstream(500, "Failed to search flights: timeout"), "fallback"); got != "Failed to search flights: timeout" {
		t.Errorf("MessageOr() = %q", got)
	}
	if got := MessageOr(errors.New("plain"), "fallback"); got != "fallback" {
		t.Errorf("MessageOr() = %q, want fallback", got)
	}
	if got := MessageOr(Upstream(500, ""), "fallback"); got != "fallback" {
		t.Errorf("MessageOr() = %q, want fallback", got)
	}
}
