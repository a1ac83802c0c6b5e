package validator

import (
	"sort"
	"strconv"
	"strings"

	"github.com/erraggy/oasminify/document"
	"github.com/erraggy/oasminify/internal/issues"
)

// checkRefs verifies that every internal $ref pointer resolves to an
// existing node, and reports external references unless allowed.
func (v *validator) checkRefs() {
	v.walkRefs(v.doc.Data, "")
}

func (v *validator) walkRefs(node any, path string) {
	switch n := node.(type) {
	case map[string]any:
		if ref, ok := n["$ref"].(string); ok {
			v.checkRef(ref, path)
		}
		// Sorted key order keeps finding order stable between runs.
		keys := make([]string, 0, len(n))
		for key := range n {
			if key != "$ref" {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			v.walkRefs(n[key], joinPath(path, key))
		}
	case []any:
		for i, sub := range n {
			v.walkRefs(sub, joinPath(path, strconv.Itoa(i)))
		}
	}
}

func (v *validator) checkRef(ref, path string) {
	if !strings.HasPrefix(ref, "#/") {
		if !v.allowExternalRefs {
			v.add(issues.Errorf(path, "external $ref not allowed: %s", ref))
		}
		return
	}
	if !resolvePointer(v.doc.Data, ref) {
		v.add(issues.Errorf(path, "unresolved $ref: %s", ref))
	}
}

// resolvePointer reports whether an internal "#/..." pointer addresses an
// existing node. Token escapes follow RFC 6901 (~1 is "/", ~0 is "~").
func resolvePointer(root map[string]any, ref string) bool {
	var cur any = root
	for _, token := range strings.Split(ref[2:], "/") {
		if token == "" {
			continue
		}
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[token]
			if !ok {
				return false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(node) {
				return false
			}
			cur = node[i]
		default:
			return false
		}
	}
	return true
}

// checkDiscriminators verifies that each schema's discriminator names a
// property reachable through the schema's own or composed properties, and
// that every mapping target resolves. The 2.0 dialect's string-form
// discriminator carries no mapping and is not checked.
func (v *validator) checkDiscriminators() {
	if v.doc.Version == document.OASVersion2 {
		return
	}
	schemas := v.doc.Schemas()
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		schema := document.AsMap(schemas[name])
		if schema == nil {
			continue
		}
		disc := document.AsMap(schema["discriminator"])
		if disc == nil {
			continue
		}
		at := "components.schemas." + name + ".discriminator"

		prop := document.AsString(disc["propertyName"])
		if prop == "" {
			v.add(issues.Error(at, "discriminator missing 'propertyName'"))
			continue
		}
		if !v.hasProperty(schema, prop, make(map[string]struct{})) {
			v.add(issues.Errorf(at, "discriminator property %q not found in schema properties", prop))
		}

		mapping := document.AsMap(disc["mapping"])
		mappingKeys := make([]string, 0, len(mapping))
		for key := range mapping {
			mappingKeys = append(mappingKeys, key)
		}
		sort.Strings(mappingKeys)
		for _, key := range mappingKeys {
			ref := document.AsString(mapping[key])
			if strings.HasPrefix(ref, "#/") && !resolvePointer(v.doc.Data, ref) {
				v.add(issues.Errorf(at+".mapping", "mapping target not found: %s", ref))
			}
		}
	}
}

// hasProperty reports whether prop exists among the schema's own properties
// or anywhere in its allOf/oneOf/anyOf composition, following internal
// schema references with a cycle guard.
func (v *validator) hasProperty(schema map[string]any, prop string, seen map[string]struct{}) bool {
	if ref, ok := document.RefOf(schema); ok {
		name, known := v.doc.SchemaRefName(ref)
		if !known {
			return false
		}
		if _, visited := seen[name]; visited {
			return false
		}
		seen[name] = struct{}{}
		target := document.AsMap(v.doc.SchemaNamed(name))
		return target != nil && v.hasProperty(target, prop, seen)
	}
	if _, ok := document.AsMap(schema["properties"])[prop]; ok {
		return true
	}
	for _, key := range []string{"allOf", "oneOf", "anyOf"} {
		for _, sub := range document.AsSlice(schema[key]) {
			if branch := document.AsMap(sub); branch != nil && v.hasProperty(branch, prop, seen) {
				return true
			}
		}
	}
	return false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
