package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/erraggy/oasminify/document"
	"github.com/erraggy/oasminify/minifier"
)

// minifyFlags contains flags for the minify command.
type minifyFlags struct {
	Input               string
	Operations          string
	Output              string
	NoDescriptions      bool
	NoExamples          bool
	NoSecurity          bool
	LenientDuplicateIDs bool
	AllowExternalRefs   bool
	MinReduction        float64
	Metrics             bool
	Verbose             bool
}

// setupMinifyFlags creates and configures a FlagSet for the minify command.
// Returns the FlagSet and a minifyFlags struct with bound flag variables.
func setupMinifyFlags() (*flag.FlagSet, *minifyFlags) {
	fs := flag.NewFlagSet("minify", flag.ContinueOnError)
	flags := &minifyFlags{}

	fs.StringVar(&flags.Input, "i", "", "input OpenAPI document (YAML or JSON)")
	fs.StringVar(&flags.Input, "input", "", "input OpenAPI document (YAML or JSON)")
	fs.StringVar(&flags.Operations, "operations", "", "comma-separated operation selectors (operationId, METHOD:path, or free text)")
	fs.StringVar(&flags.Output, "o", "", "output file path (format inferred from extension; stdout when omitted)")
	fs.StringVar(&flags.Output, "output", "", "output file path (format inferred from extension; stdout when omitted)")
	fs.BoolVar(&flags.NoDescriptions, "no-descriptions", false, "strip description fields from extracted schemas")
	fs.BoolVar(&flags.NoExamples, "no-examples", false, "strip example fields from extracted schemas")
	fs.BoolVar(&flags.NoSecurity, "no-security", false, "omit security schemes and requirements from the output")
	fs.BoolVar(&flags.LenientDuplicateIDs, "lenient-duplicate-ids", false, "demote duplicate operationId findings to warnings")
	fs.BoolVar(&flags.AllowExternalRefs, "allow-external-refs", false, "permit external $ref targets instead of failing validation")
	fs.Float64Var(&flags.MinReduction, "min-reduction", 0, "fail when the line-count reduction percentage is below this value")
	fs.BoolVar(&flags.Metrics, "metrics", false, "print size and count metrics to stderr")
	fs.BoolVar(&flags.Verbose, "v", false, "enable debug logging to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging to stderr")

	fs.Usage = func() {
		writef(fs.Output(), "Usage: oasminify minify -i <file> --operations <selectors> [flags]\n\n")
		writef(fs.Output(), "Extract the selected operations and every schema they transitively reference\n")
		writef(fs.Output(), "into a minimal document that is itself a valid OpenAPI specification.\n\n")
		writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		writef(fs.Output(), "\nSelectors:\n")
		writef(fs.Output(), "  createOrder           exact or substring operationId match\n")
		writef(fs.Output(), "  POST:/orders          a single method and path\n")
		writef(fs.Output(), "  /orders               every method on a path\n")
		writef(fs.Output(), "  \"order placement\"     fuzzy match against summaries and descriptions\n")
		writef(fs.Output(), "\nExamples:\n")
		writef(fs.Output(), "  oasminify minify -i api.yaml --operations createOrder\n")
		writef(fs.Output(), "  oasminify minify -i api.yaml --operations \"POST:/orders,GET /orders/{id}\" -o minimal.yaml\n")
		writef(fs.Output(), "  oasminify minify -i api.yaml --operations createOrder --no-examples --metrics\n")
		writef(fs.Output(), "\nExit Codes:\n")
		writef(fs.Output(), "  0    Minification succeeded\n")
		writef(fs.Output(), "  1    Minification failed (no matches, validation errors, write failure)\n")
		writef(fs.Output(), "  2    Usage error\n")
	}

	return fs, flags
}

// handleMinify executes the minify command.
func handleMinify(args []string) error {
	fs, flags := setupMinifyFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return usagef("%v", err)
	}
	if flags.Input == "" {
		fs.Usage()
		return usagef("minify requires an input document (-i/--input)")
	}
	selectors := splitSelectors(flags.Operations)
	if len(selectors) == 0 {
		fs.Usage()
		return usagef("minify requires at least one selector (--operations)")
	}

	opts := []minifier.Option{
		minifier.WithIncludeDescriptions(!flags.NoDescriptions),
		minifier.WithIncludeExamples(!flags.NoExamples),
		minifier.WithPreserveSecurity(!flags.NoSecurity),
	}
	if flags.LenientDuplicateIDs {
		opts = append(opts, minifier.WithLenientDuplicateIDs(true))
	}
	if flags.AllowExternalRefs {
		opts = append(opts, minifier.WithAllowExternalRefs(true))
	}
	if flags.Verbose {
		opts = append(opts, minifier.WithLogger(verboseLogger()))
	}

	result := minifier.Minify(flags.Input, selectors, opts...)
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}
	if !result.Success {
		return fmt.Errorf("minification failed:\n  %s", strings.Join(result.Errors, "\n  "))
	}

	if flags.Metrics {
		printMetrics(os.Stderr, result.Metrics)
	}
	if flags.MinReduction > 0 && result.Metrics.ReductionPercent < flags.MinReduction {
		return fmt.Errorf("reduction %.1f%% is below the required minimum of %.1f%%",
			result.Metrics.ReductionPercent, flags.MinReduction)
	}

	if flags.Output != "" {
		if err := minifier.WriteResult(result, flags.Output); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote minified document to %s\n", flags.Output)
		return nil
	}

	data, err := document.Marshal(result.Document, result.SourceFormat)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// splitSelectors breaks a comma-separated selector list, dropping empty entries.
func splitSelectors(raw string) []string {
	var selectors []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			selectors = append(selectors, trimmed)
		}
	}
	return selectors
}

func printMetrics(w io.Writer, m *minifier.Metrics) {
	writef(w, "Metrics:\n")
	writef(w, "  lines:      %d -> %d (%.1f%% reduction)\n", m.OriginalLines, m.MinifiedLines, m.ReductionPercent)
	writef(w, "  operations: %d -> %d\n", m.OriginalOperations, m.MinifiedOperations)
	writef(w, "  schemas:    %d -> %d\n", m.OriginalSchemas, m.MinifiedSchemas)
}

// verboseLogger builds a debug-level logger writing to stderr.
func verboseLogger() document.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return document.NewSlogAdapter(slog.New(handler))
}
