package pathutil

import "strings"

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// EscapePointerToken escapes a single JSON Pointer reference token (RFC 6901).
// "~" becomes "~0" and "/" becomes "~1".
func EscapePointerToken(token string) string {
	return pointerEscaper.Replace(token)
}

// UnescapePointerToken reverses EscapePointerToken.
func UnescapePointerToken(token string) string {
	return pointerUnescaper.Replace(token)
}

// SplitLocalRef splits a local reference such as "#/components/schemas/Pet"
// into its unescaped tokens. ok is false for references that are not local
// ("other.yaml#/Pet", "https://...") or that are empty.
func SplitLocalRef(ref string) (tokens []string, ok bool) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, false
	}
	parts := strings.Split(ref[2:], "/")
	for i, p := range parts {
		parts[i] = UnescapePointerToken(p)
	}
	return parts, true
}

// LookupPointer walks doc along tokens. Maps are indexed by key; sequences
// are not addressable by the references this module produces and fail the
// lookup.
func LookupPointer(doc map[string]any, tokens []string) (any, bool) {
	var cur any = doc
	for _, tok := range tokens {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[tok]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
