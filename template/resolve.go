package template

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"

	"github.com/gocutover/open-api-specs/internal/maputil"
)

// resolver computes a named attribute of a template.
type resolver func(t *Template) any

// defaultResolvers is the registry consulted by Get before the document.
func defaultResolvers() map[string]resolver {
	return map[string]resolver{
		"operationId":     func(t *Template) any { return t.OperationID() },
		"consumes":        func(t *Template) any { return t.Consumes() },
		"security":        func(t *Template) any { return t.Security() },
		"parameters":      func(t *Template) any { return t.Parameters() },
		"requestBody":     func(t *Template) any { return t.RequestBodyJSON() },
		"requestBodyJson": func(t *Template) any { return t.RequestBodyJSON() },
		"responses":       func(t *Template) any { return t.Responses() },
		"examples":        func(t *Template) any { return t.Examples() },
		"operation":       func(t *Template) any { return t.ctx.Operation.String() },
		"apiVersion":      func(t *Template) any { return t.ctx.APIVersion },
		"method":          func(t *Template) any { return t.ctx.Method },
		"path":            func(t *Template) any { return t.ctx.Path },
	}
}

// Names returns the attribute names Get resolves through the registry.
func (t *Template) Names() []string {
	names := make([]string, 0, len(t.resolvers))
	for name := range t.resolvers {
		names = append(names, name)
	}
	return names
}

// Get looks up an attribute by name: first the resolver registry, then the
// "<foo>Id" rule (the id field of attribute foo), then the document itself.
func (t *Template) Get(name string) (any, bool) {
	if r, ok := t.resolvers[name]; ok {
		return r(t), true
	}
	if base, ok := strings.CutSuffix(name, "Id"); ok && base != "" {
		if v, ok := t.Get(base); ok {
			if m, ok := v.(map[string]any); ok {
				id, found := m["id"]
				return id, found
			}
		}
	}
	v, ok := t.doc[name]
	return v, ok
}

// Query evaluates a JSONPath expression against the normalized document.
func (t *Template) Query(expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("template: invalid jsonpath %q: %w", expr, err)
	}
	results := x.Get(t.doc)
	for i, r := range results {
		results[i] = maputil.DeepCopy(r)
	}
	return results, nil
}
