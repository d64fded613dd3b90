package template

import (
	"fmt"
	"strings"

	"github.com/gocutover/open-api-specs/compiler"
	"github.com/gocutover/open-api-specs/fragment"
	"github.com/gocutover/open-api-specs/internal/maputil"
	"github.com/gocutover/open-api-specs/internal/naming"
	"github.com/gocutover/open-api-specs/internal/pathutil"
	"github.com/gocutover/open-api-specs/oaserrors"
	"github.com/gocutover/open-api-specs/refs"
	"github.com/gocutover/open-api-specs/versions"
)

// Context is where a template was resolved from.
type Context struct {
	// Operation is the normalized operation key
	Operation fragment.OperationKey
	// APIVersion is the version the template was requested for
	APIVersion string
	// Method is the lower-case HTTP method
	Method string
	// Path is the prefixed operation path
	Path string
}

// NewContext builds a Context from an operation key and version.
func NewContext(key fragment.OperationKey, version string) Context {
	return Context{Operation: key, APIVersion: version, Method: key.Method, Path: key.Path}
}

// Template is a read-only view of one operation document at one version,
// with defaults applied by its accessors.
type Template struct {
	ctx         Context
	doc         map[string]any
	operationID string
	cfg         *templateConfig
	resolvers   map[string]resolver
}

// New builds a Template from a resolved operation document.
//
// Top-level keys are normalized: "id" becomes "operationId" and an "x-"
// prefix is stripped. A document without an operationId fails with
// *oaserrors.MissingOperationIDError unless its path is under a legacy
// prefix, in which case one is derived from the method and path.
func New(doc map[string]any, ctx Context, opts ...Option) (*Template, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("template: invalid options: %w", err)
	}
	t := &Template{ctx: ctx, doc: normalizeKeys(doc), cfg: cfg}

	id, _ := t.doc["operationId"].(string)
	if id == "" {
		if !t.isLegacy() {
			return nil, &oaserrors.MissingOperationIDError{Key: ctx.Operation.String(), Version: ctx.APIVersion}
		}
		id = naming.OperationName(ctx.Method, ctx.Path)
	}
	t.operationID = id
	t.resolvers = defaultResolvers()
	return t, nil
}

// Find resolves descriptor (e.g. "GET /widgets" or "/api/widgets/get") at
// version through idx and wraps the result.
func Find(idx *versions.Index, descriptor, version string, opts ...Option) (*Template, error) {
	key, err := fragment.ParseOperationKey(descriptor, idx.APIPrefix())
	if err != nil {
		return nil, err
	}
	doc, err := idx.TemplateFor(key, version)
	if err != nil {
		return nil, err
	}
	return New(doc, NewContext(key, version), opts...)
}

func normalizeKeys(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch {
		case k == "id":
			if _, ok := doc["operationId"]; ok {
				continue
			}
			k = "operationId"
		case strings.HasPrefix(k, "x-"):
			k = strings.TrimPrefix(k, "x-")
		}
		out[k] = maputil.DeepCopy(v)
	}
	return out
}

func (t *Template) isLegacy() bool {
	for _, p := range t.cfg.legacyPrefixes {
		if t.ctx.Path == p || strings.HasPrefix(t.ctx.Path, p+"/") {
			return true
		}
	}
	return false
}

// Context returns where the template was resolved from.
func (t *Template) Context() Context {
	return t.ctx
}

// Document returns a copy of the normalized document.
func (t *Template) Document() map[string]any {
	return maputil.CopyMap(t.doc)
}

// OperationID returns the declared or derived operation identifier.
func (t *Template) OperationID() string {
	return t.operationID
}

// Consumes returns the request media types.
// Default: ["application/json"]
func (t *Template) Consumes() []string {
	raw, ok := t.doc["consumes"].([]any)
	if !ok || len(raw) == 0 {
		return append([]string(nil), t.cfg.defaultConsumes...)
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

// Security returns the operation's security requirements, or the default.
// An explicit empty list (an unauthenticated operation) is kept.
func (t *Template) Security() []any {
	if raw, ok := t.doc["security"].([]any); ok {
		return maputil.DeepCopy(raw).([]any)
	}
	return maputil.DeepCopy(t.cfg.defaultSecurity).([]any)
}

var compositionKeywords = []string{"oneOf", "allOf", "anyOf", "not"}

// Parameters returns the operation parameters. A bare string is a reference
// to a parameter component. Inline parameters default to in: formData and
// get a string schema unless their schema already declares a type, a
// composition or a $ref.
func (t *Template) Parameters() []any {
	raw, _ := t.doc["parameters"].([]any)
	out := make([]any, 0, len(raw))
	for _, p := range raw {
		switch v := p.(type) {
		case string:
			out = append(out, map[string]any{"$ref": pathutil.ParameterRef(v)})
		case map[string]any:
			out = append(out, defaultParameter(v))
		default:
			out = append(out, v)
		}
	}
	return out
}

func defaultParameter(p map[string]any) map[string]any {
	out := maputil.CopyMap(p)
	if _, isRef := out["$ref"]; isRef {
		return out
	}
	if _, ok := out["in"]; !ok {
		out["in"] = "formData"
	}
	schema, ok := out["schema"].(map[string]any)
	if !ok {
		if _, present := out["schema"]; present {
			return out
		}
		schema = map[string]any{}
	}
	if !hasAny(schema, "type", "$ref") && !hasAny(schema, compositionKeywords...) {
		schema["type"] = "string"
	}
	out["schema"] = schema
	return out
}

func hasAny(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// opPath is the structural position of this operation in a compiled
// document, used for reference expansion.
func (t *Template) opPath(rest ...string) []string {
	return append([]string{"paths", t.ctx.Path, t.ctx.Method}, rest...)
}

// RequestBodyJSON returns the request body in OpenAPI 3 shape, or nil when
// the operation has none. A bare string references a requestBodies
// component; bare schema and examples keys are nested under
// content/application/json; shorthand references are expanded.
func (t *Template) RequestBodyJSON() map[string]any {
	switch v := t.doc["requestBody"].(type) {
	case nil:
		return nil
	case string:
		return map[string]any{"$ref": pathutil.RequestBodyRef(v)}
	case map[string]any:
		body := compiler.WrapContent(maputil.CopyMap(v))
		out, _ := refs.NormalizeAt(t.opPath("requestBody"), body).(map[string]any)
		return out
	default:
		return nil
	}
}

// Responses returns the responses keyed by status code. The legacy list
// form ([{status: 200, ...}]) is converted. Every response gets a blank
// description and empty examples when missing, and shorthand references are
// expanded.
func (t *Template) Responses() map[string]any {
	out := make(map[string]any)
	switch raw := t.doc["responses"].(type) {
	case map[string]any:
		for code, v := range raw {
			out[code] = maputil.DeepCopy(v)
		}
	case []any:
		for _, item := range raw {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			resp := maputil.CopyMap(m)
			code := fmt.Sprint(resp["status"])
			delete(resp, "status")
			out[code] = resp
		}
	}
	for code, v := range out {
		resp, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if _, isRef := resp["$ref"]; !isRef {
			if _, ok := resp["description"]; !ok {
				resp["description"] = ""
			}
			if _, ok := resp["examples"]; !ok {
				resp["examples"] = map[string]any{}
			}
		}
		out[code] = refs.NormalizeAt(t.opPath("responses", code), resp)
	}
	return out
}

// StatusCodes returns the response codes in ascending order.
func (t *Template) StatusCodes() []string {
	return maputil.SortedKeys(t.Responses())
}
