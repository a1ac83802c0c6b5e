package validator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/erraggy/oasminify/document"
	"github.com/erraggy/oasminify/internal/issues"
	"github.com/erraggy/oasminify/internal/severity"
)

var (
	templateVarPattern = regexp.MustCompile(`\{([^}/]+)\}`)
	statusCodePattern  = regexp.MustCompile(`^[1-5][0-9]{2}$`)
)

// pathItemMetaFields are the non-operation fields a path item may carry.
var pathItemMetaFields = map[string]struct{}{
	"parameters":  {},
	"summary":     {},
	"description": {},
	"servers":     {},
	"$ref":        {},
}

type paramKey struct{ in, name string }

// checkOperations runs the per-path and per-operation checks.
func (v *validator) checkOperations() {
	schemes := v.doc.SecuritySchemes()
	seenIDs := make(map[string]string) // operationId -> "METHOD path" of first sighting

	for _, req := range document.AsSlice(v.doc.Data["security"]) {
		for name := range document.AsMap(req) {
			if _, defined := schemes[name]; !defined {
				v.add(issues.Errorf("security", "security scheme %q not defined", name))
			}
		}
	}

	for _, item := range v.doc.Paths() {
		raw := item.Raw()
		for field := range raw {
			if document.IsHTTPMethod(field) {
				continue
			}
			if _, meta := pathItemMetaFields[field]; meta || strings.HasPrefix(field, "x-") {
				continue
			}
			v.add(issues.Errorf("paths."+item.Template, "invalid field %q under path item", field))
		}

		pathVars := make(map[string]struct{})
		for _, m := range templateVarPattern.FindAllStringSubmatch(item.Template, -1) {
			pathVars[m[1]] = struct{}{}
		}
		pathParams := paramKeys(item.Parameters)

		for _, op := range item.Operations {
			v.checkOperation(op, pathVars, pathParams, seenIDs, schemes)
		}
		v.checkRequiredFlag(item.Template, "", item.Parameters)
	}
}

func (v *validator) checkOperation(op *document.Operation, pathVars map[string]struct{}, pathParams map[paramKey]struct{}, seenIDs map[string]string, schemes map[string]any) {
	where := strings.ToUpper(op.Method) + " " + op.Path
	at := func(field string) string {
		return fmt.Sprintf("paths.%s.%s.%s", op.Path, op.Method, field)
	}

	if op.OperationID != "" {
		if first, dup := seenIDs[op.OperationID]; dup {
			sev := severity.SeverityError
			if v.lenientDuplicateIDs {
				sev = severity.SeverityWarning
			}
			v.add(Issue{
				Path:     at("operationId"),
				Message:  fmt.Sprintf("duplicate operationId %q (first used by %s)", op.OperationID, first),
				Severity: sev,
				Method:   strings.ToUpper(op.Method),
				Template: op.Path,
			})
		} else {
			seenIDs[op.OperationID] = where
		}
	}

	opParams := op.Parameters()
	opKeys := paramKeys(opParams)
	if len(opKeys) != countParams(opParams) {
		v.add(issues.Errorf(at("parameters"), "duplicate parameters in %s", where))
	}
	v.checkRequiredFlag(op.Path, op.Method, opParams)

	for name := range pathVars {
		key := paramKey{in: "path", name: name}
		_, inOp := opKeys[key]
		_, inPath := pathParams[key]
		if !inOp && !inPath {
			v.add(issues.Errorf(at("parameters"), "missing required path parameter {%s}", name))
		}
	}

	if v.doc.Version == document.OASVersion2 {
		for _, p := range opParams {
			param := document.AsMap(p)
			if param != nil && document.AsString(param["in"]) == "body" && param["schema"] == nil {
				v.add(issues.Errorf(at("parameters"), "body parameter missing 'schema' in %s", where))
			}
		}
	} else if rb, declared := op.Raw()["requestBody"]; declared {
		body := document.AsMap(rb)
		if body == nil {
			v.add(issues.Errorf(at("requestBody"), "requestBody must be an object in %s", where))
		} else if _, isRef := document.RefOf(body); !isRef {
			if len(document.AsMap(body["content"])) == 0 {
				v.add(issues.Errorf(at("requestBody"), "requestBody without 'content' in %s", where))
			}
		}
	}

	responses := op.Responses()
	if len(responses) == 0 {
		v.add(issues.Errorf(at("responses"), "operation %s must have responses", where))
	}
	codes := make([]string, 0, len(responses))
	for code := range responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		node := responses[code]
		if code != "default" && !statusCodePattern.MatchString(code) {
			v.add(issues.Errorf(at("responses"), "invalid response code %q", code))
		}
		resp := document.AsMap(node)
		if resp == nil {
			continue
		}
		if _, isRef := document.RefOf(resp); isRef {
			continue
		}
		if _, ok := resp["description"]; !ok {
			v.add(issues.Errorf(at("responses."+code), "response missing 'description'"))
		}
	}

	for _, req := range document.AsSlice(op.Raw()["security"]) {
		for name := range document.AsMap(req) {
			if _, defined := schemes[name]; !defined {
				v.add(issues.Errorf(at("security"), "security scheme %q not defined", name))
			}
		}
	}
}

// checkRequiredFlag reports path parameters that are not marked required.
func (v *validator) checkRequiredFlag(template, method string, params []any) {
	for _, p := range params {
		param := document.AsMap(p)
		if param == nil || document.AsString(param["in"]) != "path" {
			continue
		}
		if required, _ := param["required"].(bool); !required {
			path := "paths." + template
			if method != "" {
				path += "." + method
			}
			v.add(issues.Errorf(path+".parameters",
				"path parameter %q must be required", document.AsString(param["name"])))
		}
	}
}

func paramKeys(params []any) map[paramKey]struct{} {
	keys := make(map[paramKey]struct{}, len(params))
	for _, p := range params {
		if param := document.AsMap(p); param != nil {
			keys[paramKey{
				in:   document.AsString(param["in"]),
				name: document.AsString(param["name"]),
			}] = struct{}{}
		}
	}
	return keys
}

func countParams(params []any) int {
	n := 0
	for _, p := range params {
		if document.AsMap(p) != nil {
			n++
		}
	}
	return n
}
