package mcpserver

import (
	"fmt"
	"os"

	"github.com/erraggy/oasminify/document"
)

// specInput represents the two ways an OAS document can be provided to a
// tool. Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

// resolve loads the document this input describes.
func (s specInput) resolve() (*document.Document, error) {
	switch {
	case s.File != "" && s.Content != "":
		return nil, fmt.Errorf("provide either file or content, not both")
	case s.File != "":
		return document.Load(s.File)
	case s.Content != "":
		return document.LoadBytes([]byte(s.Content), "inline")
	default:
		return nil, fmt.Errorf("one of file or content is required")
	}
}

// load reads the raw bytes of the input, for tools that hand the text to the
// pipeline unparsed.
func (s specInput) load() ([]byte, string, error) {
	switch {
	case s.File != "" && s.Content != "":
		return nil, "", fmt.Errorf("provide either file or content, not both")
	case s.File != "":
		data, err := os.ReadFile(s.File)
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", s.File, err)
		}
		return data, s.File, nil
	case s.Content != "":
		return []byte(s.Content), "inline", nil
	default:
		return nil, "", fmt.Errorf("one of file or content is required")
	}
}
