// Package issues provides a unified issue type for validation and
// minification problems.
package issues

import (
	"fmt"

	"github.com/erraggy/oasminify/internal/severity"
)

// Issue represents a single problem found during validation or minification.
type Issue struct {
	// Path is the JSON path to the problematic field (e.g., "paths./pets.get.responses")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Method is the HTTP method of the related operation (optional)
	Method string
	// Template is the path template of the related operation (optional)
	Template string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	path := i.Path
	if i.Method != "" && i.Template != "" {
		path = fmt.Sprintf("%s (%s %s)", i.Path, i.Method, i.Template)
	}
	if path == "" {
		return fmt.Sprintf("%s %s", symbol, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, path, i.Message)
}

// Error creates an error-severity issue at the given path.
func Error(path, message string) Issue {
	return Issue{Path: path, Message: message, Severity: severity.SeverityError}
}

// Warning creates a warning-severity issue at the given path.
func Warning(path, message string) Issue {
	return Issue{Path: path, Message: message, Severity: severity.SeverityWarning}
}

// Errorf creates an error-severity issue with a formatted message.
func Errorf(path, format string, args ...any) Issue {
	return Issue{Path: path, Message: fmt.Sprintf(format, args...), Severity: severity.SeverityError}
}

// Warningf creates a warning-severity issue with a formatted message.
func Warningf(path, format string, args ...any) Issue {
	return Issue{Path: path, Message: fmt.Sprintf(format, args...), Severity: severity.SeverityWarning}
}

// Messages converts a slice of issues to their string representations,
// preserving order.
func Messages(list []Issue) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, i := range list {
		out = append(out, i.String())
	}
	return out
}

// CountBlocking returns the number of issues that fail validation.
func CountBlocking(list []Issue) int {
	var n int
	for _, i := range list {
		if i.Severity.Blocking() {
			n++
		}
	}
	return n
}
