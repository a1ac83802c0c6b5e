package main

import (
	"fmt"
	"io"
	"os"
)

// writef writes formatted output, reporting write failures to stderr
// instead of failing the command.
func writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
