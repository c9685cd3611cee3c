// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "rule file not found",
			wantStr: "[NOT_FOUND] rule file not found",
		},
		{
			name:    "unbalanced_bracket_error",
			code:    errors.ErrUnbalancedBracket,
			message: "group is never closed",
			wantStr: "[UNBALANCED_BRACKET] group is never closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrMalformedAlternation, "bad alternation at %d", 7)
	if err.Message != "bad alternation at 7" {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInvalidRegex, "regex rejected")

		if err.Code != errors.ErrInvalidRegex {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrInvalidRegex)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[INVALID_REGEX] regex rejected: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrUnbalancedBracket, "unbalanced").
		WithDetails(map[string]interface{}{
			errors.DetailPosition: 4,
			errors.DetailPattern:  "abc;?(x",
		})

	if err.Details[errors.DetailPattern] != "abc;?(x" {
		t.Errorf("WithDetails() pattern = %v", err.Details[errors.DetailPattern])
	}

	pos, ok := errors.GetPosition(err)
	if !ok || pos != 4 {
		t.Errorf("GetPosition() = %d, %v; want 4, true", pos, ok)
	}
}

func TestGetPosition_Missing(t *testing.T) {
	if _, ok := errors.GetPosition(stderrors.New("plain")); ok {
		t.Error("GetPosition() should report false for a plain error")
	}
	if _, ok := errors.GetPosition(errors.New(errors.ErrInternal, "no position")); ok {
		t.Error("GetPosition() should report false when no position detail is set")
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotFound, "error 1")
	err2 := errors.New(errors.ErrNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !err1.Is(err2) {
		t.Error("Is() should return true for same code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should work with CorrectorError")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrNotFound, "not found"), errors.ErrNotFound, true},
		{"different_code", errors.New(errors.ErrNotFound, "not found"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrSourceRead, "denied"), errors.ErrSourceRead, true},
		{"plain_error", stderrors.New("standard error"), errors.ErrNotFound, false},
		{"nil_error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrJournalEmpty, "empty")); got != errors.ErrJournalEmpty {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(stderrors.New("standard error")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v, want UNKNOWN", got)
	}
	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(nil) = %v, want UNKNOWN", got)
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	readErr := errors.Wrap(rootCause, errors.ErrSourceRead, "cannot read rules")
	configErr := errors.Wrap(readErr, errors.ErrConfigLoad, "failed to load config")

	if !errors.IsErrorCode(configErr, errors.ErrConfigLoad) {
		t.Error("Top level should have ErrConfigLoad code")
	}

	var corrErr *errors.CorrectorError
	if stderrors.As(configErr.Unwrap(), &corrErr) {
		if corrErr.Code != errors.ErrSourceRead {
			t.Error("Middle error should have ErrSourceRead code")
		}
	} else {
		t.Error("Middle error should be a CorrectorError")
	}

	if !stderrors.Is(configErr, rootCause) {
		t.Error("Should find root cause with errors.Is")
	}
}
