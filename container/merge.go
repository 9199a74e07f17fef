package container

// Merge returns the deep merge of src over dst without modifying either.
//
// Keys present in both maps are merged recursively when both values are
// maps. In every other case (scalars, slices, mismatched types) the src value
// replaces the dst value entirely; slices are never concatenated. Keys that
// only exist in dst are kept.
//
// Example:
//
//	Merge(
//	    map[string]any{"a": map[string]any{"b": 1}},
//	    map[string]any{"a": map[string]any{"c": 2}},
//	) // {"a": {"b": 1, "c": 2}}
func Merge(dst, src map[string]any) map[string]any {
	result := DeepCopyMap(dst)
	if result == nil {
		result = make(map[string]any, len(src))
	}
	MergeInto(result, src)
	return result
}

// MergeInto deep merges src into dst in place.
// Values taken from src are deep copied, so dst never aliases src.
func MergeInto(dst, src map[string]any) {
	for key, srcValue := range src {
		dstValue, exists := dst[key]
		if !exists {
			dst[key] = DeepCopyValue(srcValue)
			continue
		}

		dstMap, dstIsMap := dstValue.(map[string]any)
		srcMap, srcIsMap := srcValue.(map[string]any)
		if dstIsMap && srcIsMap {
			MergeInto(dstMap, srcMap)
			continue
		}

		dst[key] = DeepCopyValue(srcValue)
	}
}
