package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasminify/oaserrors"
)

// OASVersion identifies which of the two supported dialects a document uses.
type OASVersion int

const (
	// OASVersionUnknown represents an unknown or undetected version
	OASVersionUnknown OASVersion = iota
	// OASVersion2 is OpenAPI Specification 2.0 (Swagger), schemas under #/definitions
	OASVersion2
	// OASVersion3 is OpenAPI Specification 3.x, schemas under #/components/schemas
	OASVersion3
)

// String returns the canonical version label.
func (v OASVersion) String() string {
	switch v {
	case OASVersion2:
		return "2.0"
	case OASVersion3:
		return "3.x"
	default:
		return "unknown"
	}
}

// SchemaRefPrefix returns the internal $ref prefix for this dialect's
// schema container.
func (v OASVersion) SchemaRefPrefix() string {
	if v == OASVersion2 {
		return "#/definitions/"
	}
	return "#/components/schemas/"
}

// SourceFormat represents the textual encoding of the source document.
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// Document is a parsed OpenAPI document plus its detected dialect version.
//
// Treat a Document as read-only after loading: the minifier builds new trees
// rather than mutating the source, and the typed path/operation views alias
// nodes of Data.
type Document struct {
	// SourcePath is the path the document was read from ("bytes" for in-memory sources)
	SourcePath string
	// SourceFormat is the textual encoding of the source
	SourceFormat SourceFormat
	// SourceSize is the size of the source text in bytes
	SourceSize int64
	// Version is the detected dialect version
	Version OASVersion
	// VersionTag is the raw value of the openapi/swagger key (e.g. "3.0.3")
	VersionTag string
	// Data is the generic parsed tree
	Data map[string]any

	paths []*PathItem
	ops   []*Operation
}

// Load reads and parses an OpenAPI document from a file.
// YAML and JSON are supported; the format is chosen by file extension with a
// content sniff as fallback. Multi-document YAML streams use the first
// document only.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oaserrors.NewParseError(path, err)
	}
	doc, err := LoadBytes(data, path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadBytes parses an OpenAPI document from raw bytes. sourcePath is used
// for format detection and error reporting only.
func LoadBytes(data []byte, sourcePath string) (*Document, error) {
	format := detectFormatFromPath(sourcePath)
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	var tree any
	switch format {
	case SourceFormatJSON:
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, &oaserrors.ParseError{Path: sourcePath, Message: "invalid JSON", Cause: err}
		}
	default:
		// Multi-document streams: a single Decode takes the first document,
		// matching yaml.safe_load_all(...)[0] behavior.
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&tree); err != nil {
			return nil, &oaserrors.ParseError{Path: sourcePath, Message: "invalid YAML", Cause: err}
		}
		format = SourceFormatYAML
	}

	root, ok := tree.(map[string]any)
	if !ok {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "document root must be a mapping"}
	}

	return FromData(root, sourcePath, format, int64(len(data))), nil
}

// FromData wraps an already-parsed generic tree in a Document. Used by
// embedding callers that manage their own codec.
func FromData(root map[string]any, sourcePath string, format SourceFormat, size int64) *Document {
	doc := &Document{
		SourcePath:   sourcePath,
		SourceFormat: format,
		SourceSize:   size,
		Data:         root,
	}
	doc.Version, doc.VersionTag = detectVersion(root)
	doc.classify()
	return doc
}

// detectVersion classifies the dialect. Presence of an "openapi" key means
// 3.x regardless of its value; swagger=="2.0" means 2.0; anything else
// defaults to 3.x. Defaulting is a policy choice, not a validation failure;
// the validator reports the missing version key separately.
func detectVersion(root map[string]any) (OASVersion, string) {
	if v, ok := root["openapi"]; ok {
		tag, _ := v.(string)
		return OASVersion3, tag
	}
	if v, ok := root["swagger"]; ok {
		if tag, ok := v.(string); ok && tag == "2.0" {
			return OASVersion2, tag
		}
	}
	return OASVersion3, ""
}

// VersionKey returns the top-level key carrying the version tag for this
// dialect ("openapi" or "swagger").
func (d *Document) VersionKey() string {
	if d.Version == OASVersion2 {
		return "swagger"
	}
	return "openapi"
}

// Schemas returns the dialect-appropriate schema container
// (components.schemas for 3.x, definitions for 2.0), or nil when absent.
func (d *Document) Schemas() map[string]any {
	if d.Version == OASVersion2 {
		return AsMap(d.Data["definitions"])
	}
	return AsMap(AsMap(d.Data["components"])["schemas"])
}

// SecuritySchemes returns the dialect-appropriate security scheme container,
// or nil when absent.
func (d *Document) SecuritySchemes() map[string]any {
	if d.Version == OASVersion2 {
		return AsMap(d.Data["securityDefinitions"])
	}
	return AsMap(AsMap(d.Data["components"])["securitySchemes"])
}

// SchemaRefName parses an internal schema reference into its bare name.
// It returns false for any other ref form: external references, pointers
// into other containers, and pointers that descend below the schema name.
func (d *Document) SchemaRefName(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, d.Version.SchemaRefPrefix())
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// SchemaNamed returns the named schema definition from the container, or nil.
func (d *Document) SchemaNamed(name string) map[string]any {
	return AsMap(d.Schemas()[name])
}

func detectFormatFromPath(path string) SourceFormat {
	switch {
	case strings.HasSuffix(path, ".json"):
		return SourceFormatJSON
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent sniffs the content bytes.
// JSON documents start with '{' or '['; everything else is treated as YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// Stats contains counts describing a document's size and shape.
type Stats struct {
	// PathCount is the number of path templates
	PathCount int
	// OperationCount is the number of (path, method) operations
	OperationCount int
	// SchemaCount is the number of reusable schema definitions
	SchemaCount int
}

// Stats computes document statistics from the classified views.
func (d *Document) Stats() Stats {
	return Stats{
		PathCount:      len(d.paths),
		OperationCount: len(d.ops),
		SchemaCount:    len(d.Schemas()),
	}
}

// String describes the document for logs and error messages.
func (d *Document) String() string {
	return fmt.Sprintf("%s (OAS %s, %d paths)", d.SourcePath, d.Version, len(d.paths))
}
