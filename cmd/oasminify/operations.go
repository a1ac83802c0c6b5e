package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/erraggy/oasminify/document"
	"github.com/erraggy/oasminify/selector"
)

// operationsFlags contains flags for the operations command.
type operationsFlags struct {
	Match string
}

// setupOperationsFlags creates and configures a FlagSet for the operations command.
func setupOperationsFlags() (*flag.FlagSet, *operationsFlags) {
	fs := flag.NewFlagSet("operations", flag.ContinueOnError)
	flags := &operationsFlags{}

	fs.StringVar(&flags.Match, "match", "", "comma-separated selectors to filter the listing")

	fs.Usage = func() {
		writef(fs.Output(), "Usage: oasminify operations [flags] <file>\n\n")
		writef(fs.Output(), "List the operations of an OpenAPI document, or the subset a selector\n")
		writef(fs.Output(), "expression would pick. Useful for previewing what minify will extract.\n\n")
		writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		writef(fs.Output(), "\nExamples:\n")
		writef(fs.Output(), "  oasminify operations api.yaml\n")
		writef(fs.Output(), "  oasminify operations --match \"order\" api.yaml\n")
		writef(fs.Output(), "\nExit Codes:\n")
		writef(fs.Output(), "  0    Listing produced\n")
		writef(fs.Output(), "  1    Document could not be loaded, or no operations matched\n")
		writef(fs.Output(), "  2    Usage error\n")
	}

	return fs, flags
}

// handleOperations executes the operations command.
func handleOperations(args []string) error {
	fs, flags := setupOperationsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return usagef("%v", err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return usagef("operations requires exactly one file argument")
	}

	doc, err := document.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	var descriptors []selector.Descriptor
	if selectors := splitSelectors(flags.Match); len(selectors) > 0 {
		descriptors = selector.Select(doc, selectors)
		if len(descriptors) == 0 {
			return fmt.Errorf("no operations matched %q", flags.Match)
		}
	} else {
		descriptors = allOperations(doc)
	}

	for _, d := range descriptors {
		line := fmt.Sprintf("%-7s %s", strings.ToUpper(d.Method), d.Path)
		if d.OperationID != "" {
			line += "  [" + d.OperationID + "]"
		}
		if d.Operation != nil && d.Operation.Summary != "" {
			line += "  " + d.Operation.Summary
		}
		fmt.Println(line)
	}
	return nil
}

// allOperations lists every operation in template-then-method order.
func allOperations(doc *document.Document) []selector.Descriptor {
	var out []selector.Descriptor
	for _, op := range doc.Operations() {
		out = append(out, selector.Descriptor{
			Method:      op.Method,
			Path:        op.Path,
			OperationID: op.OperationID,
			Operation:   op,
		})
	}
	return out
}
