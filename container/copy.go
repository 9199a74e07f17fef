// Package container provides deep copy, deep merge and normalization helpers
// for the nested map[string]any / []any values that make up a configuration.
//
// Every configuration value handled by kasane is one of:
//
//	nil, bool, int, float64, string, []any, map[string]any
//
// Normalize converts decoder output (int64, json.Number, map[any]any, ...)
// into this shape so values coming from different formats compare equal.
package container

// DeepCopyMap returns a copy of src that shares no maps or slices with it.
func DeepCopyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = DeepCopyValue(v)
	}
	return dst
}

// DeepCopySlice is the []any counterpart of DeepCopyMap.
func DeepCopySlice(src []any) []any {
	if src == nil {
		return nil
	}
	dst := make([]any, len(src))
	for i, v := range src {
		dst[i] = DeepCopyValue(v)
	}
	return dst
}

// DeepCopyValue copies v recursively. Normalized scalars are returned as-is;
// anything else, including typed maps and slices such as map[string]string
// or []string, goes through Normalize.
func DeepCopyValue(v any) any {
	switch val := v.(type) {
	case nil, bool, int, float64, string:
		return v
	case map[string]any:
		return DeepCopyMap(val)
	case []any:
		return DeepCopySlice(val)
	}
	return Normalize(v)
}
