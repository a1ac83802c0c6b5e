package document

// DeepCopyNode returns a deep copy of a generic tree node. Scalars are
// returned as-is; maps and slices are copied recursively. Extracted schemas
// must never alias the source tree, so every node handed to an assembled
// document goes through this.
func DeepCopyNode(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[k] = DeepCopyNode(val)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, val := range node {
			out[i] = DeepCopyNode(val)
		}
		return out
	default:
		return v
	}
}

// DeepCopyMap is DeepCopyNode specialized for mapping nodes.
// Returns nil for a nil input.
func DeepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return DeepCopyNode(m).(map[string]any)
}
