// Package assembler builds the minimal output document from the selected
// operations and the extracted schema container. Every node placed in the
// output is a deep copy; the assembled tree shares nothing with the source.
package assembler

import (
	"github.com/erraggy/oasminify/document"
)

// Option configures assembly.
type Option func(*assembler)

// WithPreserveSecurity controls whether security schemes and top-level
// security requirements are copied into the output. Defaults to true.
func WithPreserveSecurity(preserve bool) Option {
	return func(a *assembler) { a.preserveSecurity = preserve }
}

// WithLogger sets the logger used for assembly diagnostics.
func WithLogger(logger document.Logger) Option {
	return func(a *assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

type assembler struct {
	preserveSecurity bool
	logger           document.Logger
}

// Assemble produces the minimal document tree: the source's version tag,
// info, and server/host metadata verbatim, exactly the selected operations
// merged per path (path-level parameters preserved), security copied
// wholesale when enabled, and the wrapped schema container merged in.
func Assemble(doc *document.Document, ops []*document.Operation, container map[string]any, opts ...Option) map[string]any {
	a := &assembler{preserveSecurity: true, logger: document.NopLogger{}}
	for _, opt := range opts {
		opt(a)
	}

	out := map[string]any{
		doc.VersionKey(): doc.VersionTag,
	}
	copyIfPresent(out, doc.Data, "info")
	if doc.Version == document.OASVersion2 {
		copyIfPresent(out, doc.Data, "host", "basePath", "schemes")
	} else {
		copyIfPresent(out, doc.Data, "servers")
	}

	out["paths"] = a.assemblePaths(doc, ops)

	if a.preserveSecurity {
		a.copySecurity(doc, out)
	}

	for key, node := range container {
		if key == "components" {
			merged := ensureMap(out, "components")
			for ck, cv := range document.AsMap(node) {
				merged[ck] = cv
			}
			continue
		}
		out[key] = node
	}

	a.logger.Debug("assembled minimal document",
		"operations", len(ops), "paths", len(document.AsMap(out["paths"])))
	return out
}

// assemblePaths copies exactly the selected methods' nodes, merging multiple
// methods at one path under a single entry and keeping any path-level
// parameters array from the source path item.
func (a *assembler) assemblePaths(doc *document.Document, ops []*document.Operation) map[string]any {
	paths := make(map[string]any)
	sourcePaths := document.AsMap(doc.Data["paths"])
	for _, op := range ops {
		entry := document.AsMap(paths[op.Path])
		if entry == nil {
			entry = make(map[string]any)
			paths[op.Path] = entry
			if item := document.AsMap(sourcePaths[op.Path]); item != nil {
				if params, ok := item["parameters"]; ok {
					entry["parameters"] = document.DeepCopyNode(params)
				}
			}
		}
		entry[op.Method] = document.DeepCopyNode(op.Raw())
	}
	return paths
}

// copySecurity copies security schemes wholesale, not just the referenced
// ones, plus the document-level security requirements.
func (a *assembler) copySecurity(doc *document.Document, out map[string]any) {
	schemes := doc.SecuritySchemes()
	if len(schemes) > 0 {
		if doc.Version == document.OASVersion2 {
			out["securityDefinitions"] = document.DeepCopyNode(schemes)
		} else {
			ensureMap(out, "components")["securitySchemes"] = document.DeepCopyNode(schemes)
		}
	}
	copyIfPresent(out, doc.Data, "security")
}

func copyIfPresent(dst, src map[string]any, keys ...string) {
	for _, key := range keys {
		if v, ok := src[key]; ok {
			dst[key] = document.DeepCopyNode(v)
		}
	}
}

func ensureMap(m map[string]any, key string) map[string]any {
	if sub := document.AsMap(m[key]); sub != nil {
		return sub
	}
	sub := make(map[string]any)
	m[key] = sub
	return sub
}
