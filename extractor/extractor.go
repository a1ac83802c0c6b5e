// Package extractor copies resolved schema definitions out of a source
// document and wraps them in the dialect-appropriate container. Extracted
// definitions are deep copies; mutating them never touches the source tree.
package extractor

import (
	"sort"

	"github.com/erraggy/oasminify/document"
)

// Extract returns deep copies of the named schema definitions, keyed by
// name. Names absent from the source are silently skipped; a mistyped or
// dangling name is the validator's finding, not an extraction failure.
func Extract(doc *document.Document, names []string) map[string]any {
	out := make(map[string]any, len(names))
	for _, name := range names {
		def := doc.SchemaNamed(name)
		if def == nil {
			continue
		}
		out[name] = document.DeepCopyNode(def)
	}
	return out
}

// Names returns the extracted schema names in sorted order.
func Names(extracted map[string]any) []string {
	out := make([]string, 0, len(extracted))
	for name := range extracted {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Wrap produces the dialect-appropriate schema container:
// {components: {schemas: ...}} for 3.x, {definitions: ...} for 2.0.
// An empty extraction wraps to an empty object rather than an empty nested
// container, so merging it into a document adds no empty sections.
func Wrap(doc *document.Document, extracted map[string]any) map[string]any {
	if len(extracted) == 0 {
		return map[string]any{}
	}
	schemas := make(map[string]any, len(extracted))
	for name, def := range extracted {
		schemas[name] = def
	}
	if doc.Version == document.OASVersion2 {
		return map[string]any{"definitions": schemas}
	}
	return map[string]any{
		"components": map[string]any{"schemas": schemas},
	}
}

// StripOption removes content from extracted schema definitions in place.
type StripOption func(schema map[string]any)

// StripDescriptions removes description fields from every level of each
// schema definition.
func StripDescriptions() StripOption {
	return stripKeys("description")
}

// StripExamples removes example and examples fields from every level of
// each schema definition.
func StripExamples() StripOption {
	return stripKeys("example", "examples")
}

func stripKeys(keys ...string) StripOption {
	var strip func(node any)
	strip = func(node any) {
		switch n := node.(type) {
		case map[string]any:
			for _, key := range keys {
				delete(n, key)
			}
			for _, v := range n {
				strip(v)
			}
		case []any:
			for _, v := range n {
				strip(v)
			}
		}
	}
	return func(schema map[string]any) { strip(schema) }
}

// Strip applies the given options to every extracted definition. Call it
// only on Extract output; it mutates the maps it is given.
func Strip(extracted map[string]any, opts ...StripOption) {
	for _, def := range extracted {
		schema := document.AsMap(def)
		if schema == nil {
			continue
		}
		for _, opt := range opts {
			opt(schema)
		}
	}
}
