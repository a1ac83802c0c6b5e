// Package minifier orchestrates the minification pipeline: load, validate
// the input, select operations, resolve the schema closure, assemble the
// minimal document, validate the output, and compute size metrics. The
// contract is "always return a structured result": no stage failure and no
// internal panic escapes to the caller as anything but Result.Errors.
package minifier

import (
	"fmt"
	"runtime/debug"

	"github.com/erraggy/oasminify/assembler"
	"github.com/erraggy/oasminify/document"
	"github.com/erraggy/oasminify/extractor"
	"github.com/erraggy/oasminify/oaserrors"
	"github.com/erraggy/oasminify/resolver"
	"github.com/erraggy/oasminify/selector"
	"github.com/erraggy/oasminify/validator"
)

// Metrics reports the size effect of minification. Line counts compare the
// canonical YAML serialization of both documents.
type Metrics struct {
	// OriginalLines is the line count of the source document
	OriginalLines int
	// MinifiedLines is the line count of the minimal document
	MinifiedLines int
	// OriginalOperations is the operation count of the source document
	OriginalOperations int
	// MinifiedOperations is the operation count of the minimal document
	MinifiedOperations int
	// OriginalSchemas is the schema definition count of the source document
	OriginalSchemas int
	// MinifiedSchemas is the schema definition count of the minimal document
	MinifiedSchemas int
	// ReductionPercent is (original-minified)/original*100 in lines,
	// clamped to 0 when the original is empty
	ReductionPercent float64
}

// Analysis reports how the schema closure was reached.
type Analysis struct {
	// RootSchemas is the number of schemas referenced directly by the
	// selected operations
	RootSchemas int
	// TotalSchemas is the size of the transitive closure
	TotalSchemas int
	// MissingSchemas lists referenced names with no definition in the source
	MissingSchemas []string
	// Cycles lists cyclic schema groups within the closure
	Cycles [][]string
}

// Result is the outcome of one minification run. Partial data is populated
// as far as the pipeline got; Metrics only on success.
type Result struct {
	// Success is true when every stage completed and the output validated
	Success bool
	// Document is the assembled minimal tree, nil before assembly
	Document map[string]any
	// SourceFormat is the input's detected format
	SourceFormat document.SourceFormat
	// Operations describes the selected operations as "METHOD path (label)"
	Operations []string
	// Schemas is the sorted closure of schema names carried into the output
	Schemas []string
	// Errors contains the failure messages of whichever stage failed
	Errors []string
	// Warnings contains non-blocking findings from both validation passes
	Warnings []string
	// Metrics is populated on success only
	Metrics *Metrics
	// Analysis describes the dependency resolution, populated once
	// resolution ran
	Analysis *Analysis
}

// Option configures a minification run.
type Option func(*config)

type config struct {
	includeDescriptions bool
	includeExamples     bool
	preserveSecurity    bool
	lenientDuplicateIDs bool
	allowExternalRefs   bool
	logger              document.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{
		includeDescriptions: true,
		includeExamples:     true,
		preserveSecurity:    true,
		logger:              document.NopLogger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithIncludeDescriptions controls whether schema descriptions survive
// extraction. Defaults to true.
func WithIncludeDescriptions(include bool) Option {
	return func(c *config) { c.includeDescriptions = include }
}

// WithIncludeExamples controls whether schema examples survive extraction.
// Defaults to true.
func WithIncludeExamples(include bool) Option {
	return func(c *config) { c.includeExamples = include }
}

// WithPreserveSecurity controls whether security schemes and requirements
// are copied into the output. Defaults to true.
func WithPreserveSecurity(preserve bool) Option {
	return func(c *config) { c.preserveSecurity = preserve }
}

// WithLenientDuplicateIDs downgrades duplicate-operationId findings to
// warnings in both validation passes.
func WithLenientDuplicateIDs(lenient bool) Option {
	return func(c *config) { c.lenientDuplicateIDs = lenient }
}

// WithAllowExternalRefs permits external $ref values in both validation
// passes. External references are still never followed.
func WithAllowExternalRefs(allow bool) Option {
	return func(c *config) { c.allowExternalRefs = allow }
}

// WithLogger sets the logger for the whole pipeline.
func WithLogger(logger document.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Minify loads the document at path and runs the pipeline against it.
func Minify(path string, requests []string, opts ...Option) *Result {
	cfg := newConfig(opts)
	result := &Result{}
	doc, err := document.Load(path)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	run(cfg, doc, requests, result)
	return result
}

// MinifyBytes parses data as a document and runs the pipeline against it.
// sourcePath only informs format detection and diagnostics.
func MinifyBytes(data []byte, sourcePath string, requests []string, opts ...Option) *Result {
	cfg := newConfig(opts)
	result := &Result{}
	doc, err := document.LoadBytes(data, sourcePath)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	run(cfg, doc, requests, result)
	return result
}

// MinifyDocument runs the pipeline against an already-loaded document.
func MinifyDocument(doc *document.Document, requests []string, opts ...Option) *Result {
	result := &Result{}
	run(newConfig(opts), doc, requests, result)
	return result
}

// run executes the pipeline stages against result in place. Panics from any
// stage are recovered into Result.Errors; this is the single boundary where
// that conversion happens.
func run(cfg *config, doc *document.Document, requests []string, result *Result) {
	defer func() {
		if r := recover(); r != nil {
			cfg.logger.Error("minification panicked", "panic", r, "stack", string(debug.Stack()))
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("internal error: %v", r))
		}
	}()

	result.SourceFormat = doc.SourceFormat

	validateOpts := []validator.Option{
		validator.WithLenientDuplicateIDs(cfg.lenientDuplicateIDs),
		validator.WithAllowExternalRefs(cfg.allowExternalRefs),
		validator.WithLogger(cfg.logger),
	}

	input := validator.Validate(doc, validateOpts...)
	result.Warnings = append(result.Warnings, messagesOf(input.Warnings)...)
	if !input.Valid {
		result.Errors = append(result.Errors, messagesOf(input.Errors)...)
		return
	}

	descriptors := selector.Select(doc, requests, selector.WithLogger(cfg.logger))
	if len(descriptors) == 0 {
		result.Errors = append(result.Errors, oaserrors.ErrEmptySelection.Error())
		return
	}
	ops := make([]*document.Operation, len(descriptors))
	for i, d := range descriptors {
		ops[i] = d.Operation
		result.Operations = append(result.Operations, d.String())
	}

	resolution := resolver.Resolve(doc, ops, resolver.WithLogger(cfg.logger))
	result.Schemas = resolution.Schemas
	result.Analysis = &Analysis{
		RootSchemas:    len(resolution.Roots),
		TotalSchemas:   len(resolution.Schemas),
		MissingSchemas: resolution.Missing,
		Cycles:         resolution.Cycles(),
	}

	extracted := extractor.Extract(doc, resolution.Schemas)
	var strip []extractor.StripOption
	if !cfg.includeDescriptions {
		strip = append(strip, extractor.StripDescriptions())
	}
	if !cfg.includeExamples {
		strip = append(strip, extractor.StripExamples())
	}
	if len(strip) > 0 {
		extractor.Strip(extracted, strip...)
	}

	result.Document = assembler.Assemble(doc, ops, extractor.Wrap(doc, extracted),
		assembler.WithPreserveSecurity(cfg.preserveSecurity),
		assembler.WithLogger(cfg.logger))

	minimal := document.FromData(result.Document, "minified", doc.SourceFormat, 0)
	output := validator.Validate(minimal, validateOpts...)
	result.Warnings = append(result.Warnings, messagesOf(output.Warnings)...)
	if !output.Valid {
		result.Errors = append(result.Errors, messagesOf(output.Errors)...)
		return
	}

	metrics, err := computeMetrics(doc, minimal)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Metrics = metrics
	result.Success = true

	cfg.logger.Info("minified document",
		"operations", len(result.Operations),
		"schemas", len(result.Schemas),
		"reduction_percent", metrics.ReductionPercent)
}

func messagesOf(list []validator.Issue) []string {
	out := make([]string, 0, len(list))
	for _, issue := range list {
		out = append(out, issue.String())
	}
	return out
}

// computeMetrics serializes both documents to canonical YAML and compares
// line counts, alongside operation and schema counts.
func computeMetrics(original, minimal *document.Document) (*Metrics, error) {
	origText, err := document.Marshal(original.Data, document.SourceFormatYAML)
	if err != nil {
		return nil, fmt.Errorf("serializing original document: %w", err)
	}
	miniText, err := document.Marshal(minimal.Data, document.SourceFormatYAML)
	if err != nil {
		return nil, fmt.Errorf("serializing minified document: %w", err)
	}

	origStats := original.Stats()
	miniStats := minimal.Stats()

	m := &Metrics{
		OriginalLines:      document.CountLines(origText),
		MinifiedLines:      document.CountLines(miniText),
		OriginalOperations: origStats.OperationCount,
		MinifiedOperations: miniStats.OperationCount,
		OriginalSchemas:    origStats.SchemaCount,
		MinifiedSchemas:    miniStats.SchemaCount,
	}
	if m.OriginalLines > 0 {
		m.ReductionPercent = float64(m.OriginalLines-m.MinifiedLines) / float64(m.OriginalLines) * 100
	}
	return m, nil
}
