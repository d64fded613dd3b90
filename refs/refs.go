package refs

import (
	"strings"

	"github.com/gocutover/open-api-specs/internal/pathutil"
)

// CompositionKeywords may trail any matched position: the string elements of
// `oneOf: [A, B]` are rewritten like a bare `A`.
var CompositionKeywords = []string{"oneOf", "allOf", "anyOf", "not"}

func isComposition(s string) bool {
	for _, k := range CompositionKeywords {
		if s == k {
			return true
		}
	}
	return false
}

// Normalize returns a copy of doc in which every shorthand string at a
// schema position has been replaced by a {"$ref": ...} object. doc is not
// modified. Normalize is idempotent.
func Normalize(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out, _ := NormalizeAt(nil, doc).(map[string]any)
	return out
}

// NormalizeAt normalizes v as though it were found at path inside a larger
// document. The template package uses it to expand a request body or a
// response in isolation.
func NormalizeAt(path []string, v any) any {
	pb := pathutil.Get()
	defer pathutil.Put(pb)
	for _, seg := range path {
		pb.Push(seg)
	}
	return visit(pb, v)
}

// visit rebuilds v. Mapping keys extend the path; sequence elements keep
// their parent's path so composition arrays are matched like single values.
func visit(pb *pathutil.PathBuilder, v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			pb.Push(k)
			out[k] = visit(pb, val)
			pb.Pop()
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = visit(pb, val)
		}
		return out
	case string:
		if ref, ok := Match(pb.Segments(), t); ok {
			return map[string]any{"$ref": ref}
		}
		return t
	default:
		return v
	}
}

// Match reports the reference a string value at path expands to. Matchers
// are tried in order and the first match wins. A value that is already a
// local pointer ("#/...") is kept as the reference target.
func Match(path []string, value string) (string, bool) {
	if len(path) == 0 || path[len(path)-1] == "$ref" {
		return "", false
	}
	trimmed := path
	if isComposition(trimmed[len(trimmed)-1]) {
		trimmed = trimmed[:len(trimmed)-1]
	}
	for _, m := range matchers {
		kind, ok := m.match(trimmed)
		if !ok {
			continue
		}
		if strings.HasPrefix(value, "#/") {
			return value, true
		}
		if kind == "schemas" {
			return pathutil.SchemaRef(value), true
		}
		return pathutil.ContentSchemaRef(kind, value), true
	}
	return "", false
}

type matcher struct {
	name string
	// match inspects a path whose trailing composition keyword has been
	// removed and returns the component kind the reference points into.
	match func(path []string) (kind string, ok bool)
}

// matchers is the closed set of rewrite rules, in priority order.
var matchers = []matcher{
	{name: "property", match: matchProperty},
	{name: "component-schema", match: matchComponentSchema},
	{name: "operation-schema", match: matchOperationSchema},
	{name: "component-content", match: matchComponentContent},
	{name: "media-type-schema", match: matchMediaTypeSchema},
}

// .../properties/<name>
func matchProperty(p []string) (string, bool) {
	n := len(p)
	return "schemas", n >= 2 && p[n-2] == "properties"
}

// components/schemas/<name>[/items]
func matchComponentSchema(p []string) (string, bool) {
	if len(p) == 4 && p[3] == "items" {
		p = p[:3]
	}
	return "schemas", len(p) == 3 && p[0] == "components" && p[1] == "schemas"
}

// paths/<path>/<method>/responses/<code>/schema
// paths/<path>/<method>/requestBody/schema
func matchOperationSchema(p []string) (string, bool) {
	if len(p) < 5 || p[0] != "paths" || p[len(p)-1] != "schema" {
		return "", false
	}
	switch {
	case len(p) == 6 && p[3] == "responses":
		return "schemas", true
	case len(p) == 5 && p[3] == "requestBody":
		return "schemas", true
	}
	return "", false
}

// components/(requestBodies|responses)/<name>/schema
func matchComponentContent(p []string) (string, bool) {
	if len(p) != 4 || p[0] != "components" || p[3] != "schema" {
		return "", false
	}
	if p[1] == "requestBodies" || p[1] == "responses" {
		return p[1], true
	}
	return "", false
}

// .../content/application/json/schema
func matchMediaTypeSchema(p []string) (string, bool) {
	n := len(p)
	if n < 3 || p[n-1] != "schema" || p[n-2] != pathutil.JSONMediaType || p[n-3] != "content" {
		return "", false
	}
	for i := n - 4; i >= 0; i-- {
		switch p[i] {
		case "requestBody", "requestBodies":
			return "requestBodies", true
		case "responses":
			return "responses", true
		}
	}
	return "responses", true
}
