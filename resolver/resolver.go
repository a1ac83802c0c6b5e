// Package resolver computes the transitive schema closure required by a set
// of selected operations. Roots are gathered from the operations' request
// bodies, responses, and parameters; the closure then follows every schema
// reference edge (direct $ref, allOf/oneOf/anyOf branches, properties,
// items, schema-valued additionalProperties, and discriminator.mapping
// targets) with a visited-set guard, so cyclic schemas terminate and land in
// the result exactly once.
package resolver

import (
	"sort"

	"github.com/erraggy/oasminify/document"
	"github.com/erraggy/oasminify/internal/refgraph"
)

// Resolution is the outcome of dependency resolution. Schemas includes names
// that are referenced but not defined in the source; the extractor skips
// those and the validator reports the dangling pointers.
type Resolution struct {
	// Schemas is the sorted transitive closure of required schema names
	Schemas []string
	// Roots is the sorted set of schemas the operations reference directly
	Roots []string
	// Missing is the sorted subset of Schemas with no definition in the source
	Missing []string
	// Graph is the reference graph over the closure
	Graph *refgraph.Graph
}

// Cycles returns the cyclic schema groups within the closure.
func (r *Resolution) Cycles() [][]string {
	return r.Graph.Cycles()
}

// TopoOrder returns the closure ordered dependencies-first. The second
// return is false when the closure contains a reference cycle.
func (r *Resolution) TopoOrder() ([]string, bool) {
	return r.Graph.TopoOrder(r.Schemas)
}

// Option configures resolution.
type Option func(*resolver)

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(logger document.Logger) Option {
	return func(r *resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

type resolver struct {
	logger document.Logger
}

// Resolve returns the schema closure needed by the given operations. Only
// the selected operations contribute roots; the rest of the document never
// enters the traversal.
func Resolve(doc *document.Document, ops []*document.Operation, opts ...Option) *Resolution {
	r := &resolver{logger: document.NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}

	var roots []string
	for _, op := range ops {
		roots = append(roots, operationRoots(doc, op)...)
	}

	graph := refgraph.New()
	visited := make(map[string]struct{})
	var missing []string

	stack := make([]string, 0, len(roots))
	for _, name := range roots {
		graph.Add(name)
		stack = append(stack, name)
	}

	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, done := visited[name]; done {
			continue
		}
		visited[name] = struct{}{}

		def := doc.SchemaNamed(name)
		if def == nil {
			missing = append(missing, name)
			continue
		}
		for _, ref := range schemaRefs(doc, def) {
			graph.AddEdge(name, ref)
			stack = append(stack, ref)
		}
	}

	schemas := make([]string, 0, len(visited))
	for name := range visited {
		schemas = append(schemas, name)
	}
	sort.Strings(schemas)
	sort.Strings(missing)

	rootSet := make(map[string]struct{}, len(roots))
	for _, name := range roots {
		rootSet[name] = struct{}{}
	}
	uniqueRoots := make([]string, 0, len(rootSet))
	for name := range rootSet {
		uniqueRoots = append(uniqueRoots, name)
	}
	sort.Strings(uniqueRoots)

	r.logger.Debug("resolved schema closure",
		"operations", len(ops), "roots", len(uniqueRoots),
		"schemas", len(schemas), "missing", len(missing))

	return &Resolution{Schemas: schemas, Roots: uniqueRoots, Missing: missing, Graph: graph}
}

// operationRoots collects the schema names referenced directly by one
// operation's request body, responses, and parameters, per dialect.
func operationRoots(doc *document.Document, op *document.Operation) []string {
	var roots []string
	add := func(node any) {
		roots = append(roots, schemaRefs(doc, node)...)
	}

	if doc.Version == document.OASVersion2 {
		for _, p := range document.AsSlice(op.Raw()["parameters"]) {
			if param := document.AsMap(p); param != nil {
				add(param["schema"])
			}
		}
		for _, resp := range op.Responses() {
			if r := document.AsMap(resp); r != nil {
				add(r["schema"])
			}
		}
		return roots
	}

	if rb := op.RequestBody(); rb != nil {
		for _, media := range document.AsMap(rb["content"]) {
			if m := document.AsMap(media); m != nil {
				add(m["schema"])
			}
		}
	}
	for _, resp := range op.Responses() {
		r := document.AsMap(resp)
		if r == nil {
			continue
		}
		for _, media := range document.AsMap(r["content"]) {
			if m := document.AsMap(media); m != nil {
				add(m["schema"])
			}
		}
	}
	for _, p := range document.AsSlice(op.Raw()["parameters"]) {
		if param := document.AsMap(p); param != nil {
			add(param["schema"])
		}
	}
	return roots
}

// schemaRefs walks one schema node and returns every schema name it
// references. A direct $ref ends the walk for that node; composed and nested
// schemas are walked recursively.
func schemaRefs(doc *document.Document, node any) []string {
	var out []string
	collectRefs(doc, node, &out)
	return out
}

func collectRefs(doc *document.Document, node any, out *[]string) {
	schema := document.AsMap(node)
	if schema == nil {
		return
	}
	if ref, ok := document.RefOf(schema); ok {
		if name, known := doc.SchemaRefName(ref); known {
			*out = append(*out, name)
		}
		return
	}
	for _, key := range []string{"allOf", "oneOf", "anyOf"} {
		for _, sub := range document.AsSlice(schema[key]) {
			collectRefs(doc, sub, out)
		}
	}
	for _, sub := range document.AsMap(schema["properties"]) {
		collectRefs(doc, sub, out)
	}
	collectRefs(doc, schema["items"], out)
	// additionalProperties is walked only in schema form; boolean form
	// carries no references.
	if ap := document.AsMap(schema["additionalProperties"]); ap != nil {
		collectRefs(doc, ap, out)
	}
	if disc := document.AsMap(schema["discriminator"]); disc != nil {
		for _, target := range document.AsMap(disc["mapping"]) {
			if name, known := doc.SchemaRefName(document.AsString(target)); known {
				*out = append(*out, name)
			}
		}
	}
}
