package errors_test

import (
	"errors"
	"strings"
	"testing"

	htmlerrors "github.com/larskjaer/marktree/errors"
)

func TestParseError(t *testing.T) {
	t.Parallel()

	t.Run("Error with line and column", func(t *testing.T) {
		err := &htmlerrors.ParseError{
			Code:    "ill-formed byte sequence",
			Message: "invalid UTF-8 was replaced with U+FFFD",
			Line:    10,
			Column:  25,
		}

		expected := "ill-formed byte sequence at 10:25: invalid UTF-8 was replaced with U+FFFD"
		if got := err.Error(); got != expected {
			t.Errorf("Error() = %q, want %q", got, expected)
		}
	})

	t.Run("Error without location", func(t *testing.T) {
		err := &htmlerrors.ParseError{
			Code:    "eof-in-tag",
			Message: "unexpected end of file in tag",
			Line:    0,
			Column:  0,
		}

		expected := "eof-in-tag: unexpected end of file in tag"
		if got := err.Error(); got != expected {
			t.Errorf("Error() = %q, want %q", got, expected)
		}
	})

	t.Run("Error with only line", func(t *testing.T) {
		err := &htmlerrors.ParseError{
			Code:    "test-error",
			Message: "Test message",
			Line:    5,
			Column:  0,
		}

		// When column is 0, should not include location
		expected := "test-error: Test message"
		if got := err.Error(); got != expected {
			t.Errorf("Error() = %q, want %q", got, expected)
		}
	})
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	t.Run("Empty errors", func(t *testing.T) {
		errs := htmlerrors.ParseErrors{}
		expected := "no parse errors"
		if got := errs.Error(); got != expected {
			t.Errorf("Error() = %q, want %q", got, expected)
		}
	})

	t.Run("Single error", func(t *testing.T) {
		errs := htmlerrors.ParseErrors{
			{
				Code:    "test-error",
				Message: "Test message",
				Line:    1,
				Column:  1,
			},
		}

		expected := "test-error at 1:1: Test message"
		if got := errs.Error(); got != expected {
			t.Errorf("Error() = %q, want %q", got, expected)
		}
	})

	t.Run("Multiple errors", func(t *testing.T) {
		errs := htmlerrors.ParseErrors{
			{
				Code:    "error-one",
				Message: "First error",
				Line:    1,
				Column:  10,
			},
			{
				Code:    "error-two",
				Message: "Second error",
				Line:    5,
				Column:  20,
			},
			{
				Code:    "error-three",
				Message: "Third error",
			},
		}

		result := errs.Error()

		if !strings.HasPrefix(result, "3 parse errors:\n") {
			t.Errorf("Error() should start with '3 parse errors:\\n', got %q", result)
		}
		if !strings.Contains(result, "error-one at 1:10: First error") {
			t.Error("Error() should contain first error")
		}
		if !strings.Contains(result, "error-two at 5:20: Second error") {
			t.Error("Error() should contain second error")
		}
		if !strings.Contains(result, "error-three: Third error") {
			t.Error("Error() should contain third error")
		}
		if !strings.Contains(result, "\n  - ") {
			t.Error("Error() should have proper formatting with newlines and bullets")
		}
	})

	t.Run("Unwrap returns error slice", func(t *testing.T) {
		err1 := &htmlerrors.ParseError{Code: "err1", Message: "Error 1"}
		err2 := &htmlerrors.ParseError{Code: "err2", Message: "Error 2"}
		errs := htmlerrors.ParseErrors{err1, err2}

		unwrapped := errs.Unwrap()
		if len(unwrapped) != 2 {
			t.Errorf("Unwrap() returned %d errors, want 2", len(unwrapped))
		}
		if !errors.Is(unwrapped[0], err1) {
			t.Error("Unwrap()[0] should be err1")
		}
		if !errors.Is(unwrapped[1], err2) {
			t.Error("Unwrap()[1] should be err2")
		}
	})

	t.Run("Unwrap with empty errors", func(t *testing.T) {
		errs := htmlerrors.ParseErrors{}
		unwrapped := errs.Unwrap()
		if len(unwrapped) != 0 {
			t.Errorf("Unwrap() returned %d errors, want 0", len(unwrapped))
		}
	})
}
