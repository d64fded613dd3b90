// Package maputil provides helpers for the generic documents
// (map[string]any trees) that YAML fragments decode into.
package maputil

import (
	"fmt"
	"sort"
)

// SortedKeys returns the keys of m in ascending order.
// A nil or empty map yields an empty, non-nil slice.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StringKeys converts every map in v to map[string]any, recursively.
// YAML decodes mappings with non-string keys (such as unquoted status codes
// like 200) into map[any]any; those keys are rendered with fmt.Sprint so
// the whole tree uses one key type.
func StringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = StringKeys(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = StringKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = StringKeys(val)
		}
		return out
	default:
		return v
	}
}
