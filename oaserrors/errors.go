// Package oaserrors provides structured error types for oasminify.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ParseError: YAML/JSON parsing failures and unreadable sources
//   - ValidationError: structural violations in input or output documents
//   - SelectionError: operation selection outcomes, including the soft
//     "no matching operations found" case
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	doc, err := document.Load("api.yaml")
//	if err != nil {
//	    var parseErr *oaserrors.ParseError
//	    if errors.As(err, &parseErr) {
//	        // Malformed or unreadable source, not a structural problem
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrValidation indicates a structural validation failure.
	ErrValidation = errors.New("validation error")

	// ErrSelection indicates an operation selection failure.
	ErrSelection = errors.New("selection error")

	// ErrEmptySelection indicates that no operations matched any selector.
	// This is a normal, recoverable outcome of a mistyped selector.
	ErrEmptySelection = errors.New("no matching operations found")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse an OpenAPI document.
// This includes YAML/JSON deserialization errors and unreadable sources.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError represents one or more structural violations found while
// validating a document. Messages preserves the validator's ordering.
type ValidationError struct {
	// Stage identifies which document failed ("input" or "output")
	Stage string
	// Messages contains the individual violation strings, in order
	Messages []string
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	switch len(e.Messages) {
	case 0:
		return fmt.Sprintf("%s validation failed", e.Stage)
	case 1:
		return fmt.Sprintf("%s validation failed: %s", e.Stage, e.Messages[0])
	default:
		return fmt.Sprintf("%s validation failed with %d issues: %s", e.Stage, len(e.Messages), e.Messages[0])
	}
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// SelectionError represents a failure to resolve operation selectors.
type SelectionError struct {
	// Requests are the selector strings that were attempted
	Requests []string
	// Empty is true when no selector matched any operation
	Empty bool
	// Message provides additional context about the failure
	Message string
}

// Error returns a human-readable error message.
func (e *SelectionError) Error() string {
	if e.Empty {
		return ErrEmptySelection.Error()
	}
	if e.Message != "" {
		return "selection error: " + e.Message
	}
	return "selection error"
}

// Is reports whether target matches this error type.
// Matches ErrSelection, and also ErrEmptySelection when Empty is set.
func (e *SelectionError) Is(target error) bool {
	if target == ErrSelection {
		return true
	}
	return target == ErrEmptySelection && e.Empty
}

// ConfigError represents an invalid configuration or input option.
type ConfigError struct {
	// Option is the name of the offending option
	Option string
	// Message describes why the configuration is invalid
	Message string
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += ": " + e.Option
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NewParseError creates a ParseError with the given path and cause.
func NewParseError(path string, cause error) *ParseError {
	return &ParseError{Path: path, Cause: cause}
}

// NewEmptySelection creates the soft empty-selection error for the given
// selector strings.
func NewEmptySelection(requests []string) *SelectionError {
	return &SelectionError{Requests: requests, Empty: true}
}
