package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oasminify/document"
	"github.com/erraggy/oasminify/oaserrors"
	"github.com/erraggy/oasminify/validator"
)

// validateFlags contains flags for the validate command.
type validateFlags struct {
	LenientDuplicateIDs bool
	AllowExternalRefs   bool
	Quiet               bool
}

// setupValidateFlags creates and configures a FlagSet for the validate command.
func setupValidateFlags() (*flag.FlagSet, *validateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &validateFlags{}

	fs.BoolVar(&flags.LenientDuplicateIDs, "lenient-duplicate-ids", false, "demote duplicate operationId findings to warnings")
	fs.BoolVar(&flags.AllowExternalRefs, "allow-external-refs", false, "permit external $ref targets instead of failing validation")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress per-issue output")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress per-issue output")

	fs.Usage = func() {
		writef(fs.Output(), "Usage: oasminify validate [flags] <file>\n\n")
		writef(fs.Output(), "Run the structural checks the minifier applies to its inputs and outputs:\n")
		writef(fs.Output(), "top-level fields, operation shapes, internal reference resolution, and\n")
		writef(fs.Output(), "discriminator consistency.\n\n")
		writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		writef(fs.Output(), "\nExamples:\n")
		writef(fs.Output(), "  oasminify validate api.yaml\n")
		writef(fs.Output(), "  oasminify validate --lenient-duplicate-ids api.json\n")
		writef(fs.Output(), "\nExit Codes:\n")
		writef(fs.Output(), "  0    Document is valid (warnings allowed)\n")
		writef(fs.Output(), "  1    Document has validation errors\n")
		writef(fs.Output(), "  2    Usage error\n")
	}

	return fs, flags
}

// handleValidate executes the validate command.
func handleValidate(args []string) error {
	fs, flags := setupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return usagef("%v", err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return usagef("validate requires exactly one file argument")
	}

	doc, err := document.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	opts := []validator.Option{
		validator.WithLenientDuplicateIDs(flags.LenientDuplicateIDs),
		validator.WithAllowExternalRefs(flags.AllowExternalRefs),
	}
	result := validator.Validate(doc, opts...)

	if !flags.Quiet {
		for _, msg := range result.Messages() {
			fmt.Println(msg)
		}
	}
	if !result.Valid {
		return &oaserrors.ValidationError{Stage: fs.Arg(0), Messages: issueMessages(result.Errors)}
	}
	if !flags.Quiet {
		fmt.Fprintf(os.Stderr, "%s is valid (%d warning(s))\n", fs.Arg(0), len(result.Warnings))
	}
	return nil
}

func issueMessages(list []validator.Issue) []string {
	out := make([]string, 0, len(list))
	for _, issue := range list {
		out = append(out, issue.String())
	}
	return out
}
