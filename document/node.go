package document

// AsMap returns v as a generic mapping, or nil when v is not one.
// It accepts the untyped trees produced by both the YAML and JSON decoders.
func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// AsSlice returns v as a generic sequence, or nil when v is not one.
func AsSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// AsString returns v as a string, or "" when v is not one.
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsStrings converts a generic sequence into its string elements,
// skipping anything that is not a string.
func AsStrings(v any) []string {
	seq := AsSlice(v)
	if len(seq) == 0 {
		return nil
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// RefOf returns the $ref value of a node when the node is a mapping with a
// string $ref member.
func RefOf(v any) (string, bool) {
	m := AsMap(v)
	if m == nil {
		return "", false
	}
	ref, ok := m["$ref"].(string)
	return ref, ok && ref != ""
}
