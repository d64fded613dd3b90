package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gocutover/open-api-specs/internal/issues"
	"github.com/gocutover/open-api-specs/internal/maputil"
	"github.com/gocutover/open-api-specs/internal/pathutil"
)

var (
	openAPI30Regex     = regexp.MustCompile(`^3\.0\.\d+$`)
	componentNameRegex = regexp.MustCompile(`^[a-zA-Z0-9.\-_]+$`)
)

// operationMethods are the path item keys that hold an operation.
var operationMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// pathItemFields are the non-operation keys a path item may carry.
var pathItemFields = []string{"$ref", "summary", "description", "servers", "parameters"}

var parameterLocations = []string{"query", "header", "path", "cookie"}

var componentKinds = []string{
	"schemas", "responses", "parameters", "examples", "requestBodies",
	"headers", "securitySchemes", "links", "callbacks",
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (v *Validator) validateRoot(doc map[string]any, result *ValidationResult) {
	switch version, ok := doc["openapi"].(string); {
	case doc["openapi"] == nil:
		v.addError(result, "openapi", "field is required", withField("openapi"), withSpecRef("openapi-object"))
	case !ok || !openAPI30Regex.MatchString(version):
		v.addError(result, "openapi", fmt.Sprintf("unsupported OpenAPI version %v, expected 3.0.x", doc["openapi"]),
			withField("openapi"), withValue(doc["openapi"]))
	}

	info, ok := doc["info"].(map[string]any)
	if !ok {
		v.addError(result, "info", "field is required and must be an object", withField("info"), withSpecRef("info-object"))
	} else {
		for _, field := range []string{"title", "version"} {
			s, isString := info[field].(string)
			if !isString || s == "" {
				v.addError(result, issues.FormatPath("info", field), "must be a non-empty string",
					withField(field), withValue(info[field]), withSpecRef("info-object"))
			}
		}
	}

	if _, ok := doc["paths"].(map[string]any); !ok {
		v.addError(result, "paths", "field is required and must be an object", withField("paths"), withSpecRef("paths-object"))
	}
}

func (v *Validator) validatePaths(doc map[string]any, result *ValidationResult) {
	paths, _ := doc["paths"].(map[string]any)
	for _, p := range maputil.SortedKeys(paths) {
		base := issues.FormatPath("paths", p)
		if !strings.HasPrefix(p, "/") {
			v.addError(result, base, "path must begin with /", withValue(p), withSpecRef("paths-object"))
		}
		if err := validatePathTemplate(p); err != nil {
			v.addError(result, base, err.Error(), withValue(p))
		}

		item, ok := paths[p].(map[string]any)
		if !ok {
			v.addError(result, base, "path item must be an object")
			continue
		}
		pathParams, _ := item["parameters"].([]any)
		v.validateParameters(doc, pathParams, issues.FormatPath(base, "parameters"), result)

		for _, key := range maputil.SortedKeys(item) {
			if contains(pathItemFields, key) || strings.HasPrefix(key, "x-") {
				continue
			}
			if !contains(operationMethods, key) {
				v.addError(result, issues.FormatPath(base, key), "unknown key in path item; operations are only allowed under HTTP method keys",
					withField(key), withSpecRef("path-item-object"))
				continue
			}
			op, ok := item[key].(map[string]any)
			if !ok {
				v.addError(result, issues.FormatPath(base, key), "operation must be an object")
				continue
			}
			opPath := issues.FormatPath(base, key)
			v.validateOperation(doc, op, opPath, result)

			opParams, _ := op["parameters"].([]any)
			v.validatePathTemplateParams(doc, p, pathParams, opParams, opPath, result)
		}
	}
}

func (v *Validator) validateOperation(doc, op map[string]any, path string, result *ValidationResult) {
	responses, ok := op["responses"].(map[string]any)
	if !ok || len(responses) == 0 {
		v.addError(result, issues.FormatPath(path, "responses"), "operation must declare at least one response",
			withField("responses"), withSpecRef("operation-object"))
	}
	for _, code := range maputil.SortedKeys(responses) {
		rpath := issues.FormatPath(path, "responses", code)
		resp, ok := responses[code].(map[string]any)
		if !ok {
			v.addError(result, rpath, "response must be an object")
			continue
		}
		if _, isRef := resp["$ref"]; isRef {
			continue
		}
		if _, ok := resp["description"].(string); !ok {
			v.addError(result, rpath, "response description is required", withField("description"), withSpecRef("response-object"))
		}
		v.checkBareSchema(resp, rpath, result)
	}

	if body, ok := op["requestBody"].(map[string]any); ok {
		if _, isRef := body["$ref"]; !isRef {
			v.checkBareSchema(body, issues.FormatPath(path, "requestBody"), result)
		}
	}

	params, _ := op["parameters"].([]any)
	v.validateParameters(doc, params, issues.FormatPath(path, "parameters"), result)
}

// checkBareSchema reports a schema written directly on a response or request
// body instead of under content/<media type>.
func (v *Validator) checkBareSchema(node map[string]any, path string, result *ValidationResult) {
	if _, ok := node["schema"]; ok {
		v.addError(result, issues.FormatPath(path, "schema"), "schema must be nested under content/<media type> in OpenAPI 3",
			withField("schema"), withSpecRef("media-type-object"))
	}
}

// resolveLocal follows a single local $ref on node, if present.
func resolveLocal(doc map[string]any, node map[string]any) (map[string]any, bool) {
	ref, ok := node["$ref"].(string)
	if !ok {
		return node, true
	}
	tokens, ok := pathutil.SplitLocalRef(ref)
	if !ok {
		return nil, false
	}
	target, ok := pathutil.LookupPointer(doc, tokens)
	if !ok {
		return nil, false
	}
	m, ok := target.(map[string]any)
	return m, ok
}

func (v *Validator) validateParameters(doc map[string]any, params []any, path string, result *ValidationResult) {
	for i, raw := range params {
		ppath := fmt.Sprintf("%s[%d]", path, i)
		param, ok := raw.(map[string]any)
		if !ok {
			v.addError(result, ppath, "parameter must be an object", withValue(raw))
			continue
		}
		if _, isRef := param["$ref"]; isRef {
			continue
		}
		v.validateParameter(doc, param, ppath, result)
	}
}

func (v *Validator) validateParameter(doc, param map[string]any, path string, result *ValidationResult) {
	name, _ := param["name"].(string)
	if name == "" {
		v.addError(result, path, "parameter name is required", withField("name"), withSpecRef("parameter-object"))
	}
	in, _ := param["in"].(string)
	switch {
	case in == "":
		v.addError(result, path, "parameter location (in) is required", withField("in"), withSpecRef("parameter-object"))
	case !contains(parameterLocations, in):
		v.addError(result, path, fmt.Sprintf("invalid parameter location %q, expected one of %s", in, strings.Join(parameterLocations, ", ")),
			withField("in"), withValue(in), withSpecRef("parameter-object"))
	case in == "path":
		if required, _ := param["required"].(bool); !required {
			v.addError(result, path, "path parameters must be required: true", withField("required"), withSpecRef("parameter-object"))
		}
	}

	if style, _ := param["style"].(string); style == "deepObject" {
		schema, _ := param["schema"].(map[string]any)
		if schema != nil {
			schema, _ = resolveLocal(doc, schema)
		}
		switch {
		case schema == nil:
			v.addError(result, issues.FormatPath(path, "schema"), "deepObject parameter requires a schema", withField("schema"))
		case schema["oneOf"] != nil || schema["anyOf"] != nil:
			v.addError(result, issues.FormatPath(path, "schema"), MsgDeepObjectPolymorphic, withField("schema"))
		case schema["type"] != "object":
			v.addError(result, issues.FormatPath(path, "schema"), "deepObject parameter schema must be of type object",
				withField("type"), withValue(schema["type"]))
		}
	}
}

// validatePathTemplateParams warns about template parameters that neither
// the path item nor the operation declares.
func (v *Validator) validatePathTemplateParams(doc map[string]any, template string, pathParams, opParams []any, opPath string, result *ValidationResult) {
	declared := make(map[string]bool)
	for _, list := range [][]any{pathParams, opParams} {
		for _, raw := range list {
			param, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if param, ok = resolveLocal(doc, param); !ok {
				continue
			}
			if in, _ := param["in"].(string); in == "path" {
				name, _ := param["name"].(string)
				declared[name] = true
			}
		}
	}
	for _, name := range pathutil.PathParams(template) {
		if !declared[name] {
			v.addWarning(result, issues.FormatPath(opPath, "parameters"),
				fmt.Sprintf("path parameter {%s} is not declared", name), withValue(name), withSpecRef("path-templating"))
		}
	}
}

func (v *Validator) validateComponents(doc map[string]any, result *ValidationResult) {
	components, ok := doc["components"].(map[string]any)
	if !ok {
		return
	}
	for _, kind := range maputil.SortedKeys(components) {
		if strings.HasPrefix(kind, "x-") {
			continue
		}
		if !contains(componentKinds, kind) {
			v.addError(result, issues.FormatPath("components", kind), "unknown component type", withField(kind), withSpecRef("components-object"))
			continue
		}
		entries, ok := components[kind].(map[string]any)
		if !ok {
			v.addError(result, issues.FormatPath("components", kind), "components section must be an object")
			continue
		}
		for _, name := range maputil.SortedKeys(entries) {
			if !componentNameRegex.MatchString(name) {
				v.addError(result, issues.FormatPath("components", kind, name), "component name must match ^[a-zA-Z0-9.\\-_]+$",
					withValue(name), withSpecRef("components-object"))
			}
		}
		if kind == "parameters" {
			for _, name := range maputil.SortedKeys(entries) {
				if param, ok := entries[name].(map[string]any); ok {
					if _, isRef := param["$ref"]; !isRef {
						v.validateParameter(doc, param, issues.FormatPath("components", kind, name), result)
					}
				}
			}
		}
	}
}

func (v *Validator) validateOperationIDs(doc map[string]any, result *ValidationResult) {
	seen := make(map[string]string)
	paths, _ := doc["paths"].(map[string]any)
	for _, p := range maputil.SortedKeys(paths) {
		item, _ := paths[p].(map[string]any)
		for _, method := range operationMethods {
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			id, ok := op["operationId"].(string)
			if !ok || id == "" {
				continue
			}
			opPath := issues.FormatPath("paths", p, method)
			if first, dup := seen[id]; dup {
				v.addError(result, issues.FormatPath(opPath, "operationId"),
					fmt.Sprintf("duplicate operationId %q (first used at %s)", id, first),
					withField("operationId"), withValue(id), withSpecRef("operation-object"))
				continue
			}
			seen[id] = opPath
		}
	}
}

// validateRefs checks that every local $ref resolves.
func (v *Validator) validateRefs(doc map[string]any, result *ValidationResult) {
	pb := pathutil.Get()
	defer pathutil.Put(pb)
	v.walkRefs(doc, doc, pb, result)
}

func (v *Validator) walkRefs(doc map[string]any, node any, pb *pathutil.PathBuilder, result *ValidationResult) {
	switch t := node.(type) {
	case map[string]any:
		if ref, ok := t["$ref"].(string); ok {
			if tokens, local := pathutil.SplitLocalRef(ref); local {
				if _, found := pathutil.LookupPointer(doc, tokens); !found {
					v.addError(result, pb.String(), fmt.Sprintf("unresolved reference %q", ref),
						withField("$ref"), withValue(ref), withSpecRef("reference-object"))
				}
			}
		}
		for _, k := range maputil.SortedKeys(t) {
			pb.Push(k)
			v.walkRefs(doc, t[k], pb, result)
			pb.Pop()
		}
	case []any:
		for i, item := range t {
			pb.PushIndex(i)
			v.walkRefs(doc, item, pb, result)
			pb.Pop()
		}
	}
}
