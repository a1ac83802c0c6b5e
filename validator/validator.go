// Package validator applies structural checks to OpenAPI documents. The same
// checks run against minification input and output, so a defect introduced
// by assembly surfaces exactly like a defect already present in the source.
package validator

import (
	"github.com/erraggy/oasminify/document"
	"github.com/erraggy/oasminify/internal/issues"
	"github.com/erraggy/oasminify/internal/severity"
)

// Severity indicates the severity level of a validation issue
type Severity = severity.Severity

const (
	// SeverityError indicates a structural violation that makes the document invalid
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a finding downgraded by lenient mode
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
)

// Issue represents a single validation finding
type Issue = issues.Issue

// Result contains the findings of one validation pass.
type Result struct {
	// Valid is true when no error-severity findings exist (warnings are allowed)
	Valid bool
	// Errors contains the blocking findings
	Errors []Issue
	// Warnings contains the non-blocking findings
	Warnings []Issue
}

// Messages returns all findings as formatted strings, errors first.
func (r *Result) Messages() []string {
	out := issues.Messages(r.Errors)
	return append(out, issues.Messages(r.Warnings)...)
}

// Option configures validation.
type Option func(*validator)

// WithLenientDuplicateIDs downgrades the duplicate-operationId finding to a
// warning. All other findings stay blocking regardless of mode.
func WithLenientDuplicateIDs(lenient bool) Option {
	return func(v *validator) { v.lenientDuplicateIDs = lenient }
}

// WithAllowExternalRefs permits $ref values that point outside the document.
// External references are never followed; this only suppresses the finding.
func WithAllowExternalRefs(allow bool) Option {
	return func(v *validator) { v.allowExternalRefs = allow }
}

// WithLogger sets the logger used for validation diagnostics.
func WithLogger(logger document.Logger) Option {
	return func(v *validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

type validator struct {
	lenientDuplicateIDs bool
	allowExternalRefs   bool
	logger              document.Logger

	doc  *document.Document
	list []Issue
}

// Validate runs every structural check against the document and returns the
// aggregated findings.
func Validate(doc *document.Document, opts ...Option) *Result {
	v := &validator{logger: document.NopLogger{}, doc: doc}
	for _, opt := range opts {
		opt(v)
	}

	v.checkTopLevel()
	v.checkOperations()
	v.checkRefs()
	v.checkDiscriminators()

	result := &Result{}
	for _, issue := range v.list {
		if issue.Severity.Blocking() {
			result.Errors = append(result.Errors, issue)
		} else {
			result.Warnings = append(result.Warnings, issue)
		}
	}
	result.Valid = len(result.Errors) == 0

	v.logger.Debug("validated document",
		"source", doc.SourcePath, "errors", len(result.Errors), "warnings", len(result.Warnings))
	return result
}

func (v *validator) add(issue Issue) {
	v.list = append(v.list, issue)
}

// checkTopLevel verifies the required top-level fields: a version tag, info
// title and version, and a non-empty paths object.
func (v *validator) checkTopLevel() {
	root := v.doc.Data
	if _, hasOAS := root["openapi"]; !hasOAS {
		if _, hasSwagger := root["swagger"]; !hasSwagger {
			v.add(issues.Error("", "missing 'openapi' (3.x) or 'swagger' (2.0) version"))
		}
	}

	info := document.AsMap(root["info"])
	if info == nil {
		v.add(issues.Error("info", "missing required 'info' object"))
	} else {
		if document.AsString(info["title"]) == "" {
			v.add(issues.Error("info.title", "missing required field"))
		}
		if document.AsString(info["version"]) == "" {
			v.add(issues.Error("info.version", "missing required field"))
		}
	}

	paths := document.AsMap(root["paths"])
	if paths == nil {
		v.add(issues.Error("paths", "missing or invalid 'paths' object"))
	} else if len(paths) == 0 {
		v.add(issues.Error("paths", "'paths' must not be empty"))
	}
}
