// Command oasminify extracts minimal, self-contained OpenAPI documents
// containing only selected operations and their transitive schema closure.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/erraggy/oasminify"
	"github.com/erraggy/oasminify/internal/mcpserver"
)

// Exit codes: 0 success, 1 pipeline failure, 2 usage error.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks a failure that should exit with the usage code.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return exitUsage
	}

	var err error
	switch command := args[0]; command {
	case "version", "-v", "--version":
		fmt.Printf("oasminify v%s\n", oasminify.Version())
	case "help", "-h", "--help":
		printUsage()
	case "minify":
		err = handleMinify(args[1:])
	case "validate":
		err = handleValidate(args[1:])
	case "operations":
		err = handleOperations(args[1:])
	case "mcp":
		err = mcpserver.Run(context.Background())
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		return exitUsage
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if _, usage := err.(*usageError); usage {
			return exitUsage
		}
		return exitError
	}
	return exitOK
}

func printUsage() {
	fmt.Printf(`oasminify v%s - minimal OpenAPI document extraction

Usage: oasminify <command> [flags]

Commands:
  minify      Extract selected operations and their schema closure
  validate    Run structural validation checks against a document
  operations  List or search the operations of a document
  mcp         Serve the minifier as MCP tools over stdio
  version     Show version information
  help        Show this help message

Run 'oasminify <command> -h' for command-specific flags.

Examples:
  oasminify minify -i api.yaml --operations createOrder -o minimal.yaml
  oasminify minify -i api.yaml --operations "POST:/orders,GET /orders"
  oasminify validate api.yaml
  oasminify operations api.yaml
`, oasminify.Version())
}
