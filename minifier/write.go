package minifier

import (
	"fmt"
	"os"

	"github.com/erraggy/oasminify/document"
)

// MarshalResult serializes the minimal document for the given destination
// path: JSON when the extension is .json, YAML otherwise.
func MarshalResult(result *Result, path string) ([]byte, error) {
	if result == nil || result.Document == nil {
		return nil, fmt.Errorf("no minified document to serialize")
	}
	return document.Marshal(result.Document, document.FormatForPath(path))
}

// WriteResult persists a successful result to path with 0600 permissions.
// Failed results are never written; serialization happens fully in memory
// first, so a marshal error leaves the destination untouched.
func WriteResult(result *Result, path string) error {
	if result == nil || !result.Success {
		return fmt.Errorf("refusing to write failed minification result")
	}
	data, err := MarshalResult(result, path)
	if err != nil {
		return fmt.Errorf("serializing minified document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
