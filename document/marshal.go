package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Marshal serializes a generic tree to its canonical textual form.
// YAML is the canonical form used for size metrics; JSON output is indented.
func Marshal(tree any, format SourceFormat) ([]byte, error) {
	switch format {
	case SourceFormatJSON:
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling to JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		data, err := yaml.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("marshaling to YAML: %w", err)
		}
		return data, nil
	}
}

// FormatForPath selects the output format for a destination path:
// a .json extension means JSON, anything else the YAML form.
func FormatForPath(path string) SourceFormat {
	if detectFormatFromPath(path) == SourceFormatJSON {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// CountLines counts the newline-delimited lines of serialized text.
// A trailing newline does not count an extra empty line.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}
