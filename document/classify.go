package document

import (
	"sort"
	"strings"
)

// httpMethods are the path-item keys that denote HTTP operations.
// Anything else under a path item (parameters, summary, vendor extensions)
// is path-level metadata, not an operation.
var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// IsHTTPMethod reports whether key is an HTTP method key of a path item.
func IsHTTPMethod(key string) bool {
	return httpMethods[strings.ToLower(key)]
}

// PathItem is the typed view of one entry under paths.
type PathItem struct {
	// Template is the path template (e.g. "/pets/{petId}")
	Template string
	// Parameters holds the path-level shared parameters, if any
	Parameters []any
	// Operations are the HTTP operations defined on this path
	Operations []*Operation

	raw map[string]any
}

// Raw returns the underlying path item node.
func (p *PathItem) Raw() map[string]any { return p.raw }

// Operation is the typed view of one (path, method) HTTP operation.
type Operation struct {
	// Method is the lower-cased HTTP method ("get", "post", ...)
	Method string
	// Path is the owning path template
	Path string
	// OperationID is the operationId, if declared
	OperationID string
	// Summary is the operation summary, if declared
	Summary string
	// Description is the operation description, if declared
	Description string
	// Tags are the operation's tags
	Tags []string

	raw map[string]any
}

// Raw returns the underlying operation node.
func (o *Operation) Raw() map[string]any { return o.raw }

// Parameters returns the operation-level parameter list, if any.
func (o *Operation) Parameters() []any {
	return AsSlice(o.raw["parameters"])
}

// Responses returns the operation's responses node, if any.
func (o *Operation) Responses() map[string]any {
	return AsMap(o.raw["responses"])
}

// RequestBody returns the operation's requestBody node (3.x only), if any.
func (o *Operation) RequestBody() map[string]any {
	return AsMap(o.raw["requestBody"])
}

// Security returns the operation's security requirement list, if any.
func (o *Operation) Security() []any {
	return AsSlice(o.raw["security"])
}

// classify builds the typed path and operation views in one pass over the
// generic tree. Path items are ordered by template so iteration is
// deterministic; map iteration order would not be.
func (d *Document) classify() {
	pathsNode := AsMap(d.Data["paths"])
	if len(pathsNode) == 0 {
		return
	}

	templates := make([]string, 0, len(pathsNode))
	for template := range pathsNode {
		templates = append(templates, template)
	}
	sort.Strings(templates)

	d.paths = make([]*PathItem, 0, len(templates))
	for _, template := range templates {
		itemNode := AsMap(pathsNode[template])
		if itemNode == nil {
			continue
		}

		item := &PathItem{
			Template:   template,
			Parameters: AsSlice(itemNode["parameters"]),
			raw:        itemNode,
		}

		for _, method := range methodOrder {
			opNode := AsMap(itemNode[method])
			if opNode == nil {
				continue
			}
			op := &Operation{
				Method:      method,
				Path:        template,
				OperationID: AsString(opNode["operationId"]),
				Summary:     AsString(opNode["summary"]),
				Description: AsString(opNode["description"]),
				Tags:        AsStrings(opNode["tags"]),
				raw:         opNode,
			}
			item.Operations = append(item.Operations, op)
			d.ops = append(d.ops, op)
		}

		d.paths = append(d.paths, item)
	}
}

// methodOrder fixes the iteration order of operations within a path item.
var methodOrder = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// Paths returns the typed path items, ordered by template.
func (d *Document) Paths() []*PathItem {
	return d.paths
}

// Operations returns every HTTP operation in the document, ordered by
// path template then method.
func (d *Document) Operations() []*Operation {
	return d.ops
}
