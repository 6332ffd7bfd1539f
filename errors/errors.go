// Package errors defines the parse-error value the tree builder sink
// reports through Sink.ParseError, collected by treesink.Builder for
// callers that want more than the encoding hint's error counter.
package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a single tokenizer/tree-construction parse error
// with the description the sink received and, when the caller supplies
// them, location information.
type ParseError struct {
	// Code is the error description passed to Sink.ParseError. For errors
	// surfaced through golang.org/x/net/html this is free-form text, not a
	// fixed WHATWG error code — the external tokenizer does not expose one.
	Code string

	// Message is a human-readable message, when distinct from Code.
	Message string

	// Line is the 1-based line number where the error occurred, or 0 if
	// unknown.
	Line int

	// Column is the 1-based column number where the error occurred, or 0
	// if unknown.
	Column int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Code, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ParseErrors is a collection of parse errors accumulated over one parse.
// It implements the error interface so it can be returned directly.
type ParseErrors []*ParseError

// Error implements the error interface.
func (e ParseErrors) Error() string {
	if len(e) == 0 {
		return "no parse errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d parse errors:\n", len(e))
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying errors for errors.Is/As support.
func (e ParseErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}
