// Package severity provides severity level constants for issues reported by
// the validator and minifier packages.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error.
package severity

// Severity indicates the severity level of an issue found while validating
// or minifying a document.
type Severity int

const (
	// SeverityError indicates a structural violation that makes the document
	// invalid. Errors block the minification pipeline in strict mode.
	SeverityError Severity = iota

	// SeverityWarning indicates a finding that does not prevent processing
	// but should be addressed, such as a duplicate operationId in lenient
	// mode.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Blocking reports whether an issue of this severity fails validation.
func (s Severity) Blocking() bool {
	return s == SeverityError
}
