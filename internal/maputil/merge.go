package maputil

import (
	"reflect"
	"strings"
)

// ConflictFunc is called by Merge when a leaf that already exists in the
// destination is overwritten with a different value. path is the
// slash-joined key path of the leaf.
type ConflictFunc func(path string, old, replacement any)

// Merge deep-merges src into dst in place and returns dst.
//
// Mappings are unioned key by key, recursing into keys present on both
// sides. Everything else (scalars, sequences, or a mapping meeting a
// non-mapping) is last-write-wins: the src value replaces the dst value
// wholesale, so sequences are never concatenated. Values taken from src are
// deep-copied, so later mutation of dst never reaches src.
//
// A nil dst is allocated. onConflict may be nil.
func Merge(dst, src map[string]any, onConflict ConflictFunc) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	mergeAt(dst, src, nil, onConflict)
	return dst
}

func mergeAt(dst, src map[string]any, path []string, onConflict ConflictFunc) {
	for k, sv := range src {
		dv, exists := dst[k]
		if !exists {
			dst[k] = DeepCopy(sv)
			continue
		}
		dm, dIsMap := dv.(map[string]any)
		sm, sIsMap := sv.(map[string]any)
		if dIsMap && sIsMap {
			mergeAt(dm, sm, append(path, k), onConflict)
			continue
		}
		if onConflict != nil && !Equal(dv, sv) {
			onConflict(strings.Join(append(path, k), "/"), dv, sv)
		}
		dst[k] = DeepCopy(sv)
	}
}

// DeepCopy returns a copy of v that shares no mappings or sequences with it.
// Scalars are returned as is.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = DeepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = DeepCopy(val)
		}
		return out
	default:
		return v
	}
}

// CopyMap is DeepCopy for a mapping. A nil map yields an empty one.
func CopyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return DeepCopy(m).(map[string]any)
}

// Equal reports whether two document values are structurally equal.
func Equal(a, b any) bool {
	switch at := a.(type) {
	case map[string]any:
		bt, ok := b.(map[string]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for k, av := range at {
			bv, ok := bt[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case []any:
		bt, ok := b.([]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !Equal(at[i], bt[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}
