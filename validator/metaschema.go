package validator

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/gocutover/open-api-specs/internal/issues"
	"github.com/gocutover/open-api-specs/internal/maputil"
)

// unit is any kin-openapi value that validates itself.
type unit interface {
	comparable
	Validate(ctx context.Context, opts ...openapi3.ValidationOption) error
}

// validateMetaSchema loads doc with kin-openapi and validates every
// component, path and top-level section on its own, so one broken schema
// does not hide the next. Each failure becomes an issue at the unit's path.
// Loader failures, and document failures no unit accounts for, are reported
// at "document".
func (v *Validator) validateMetaSchema(ctx context.Context, doc map[string]any, result *ValidationResult) {
	data, err := json.Marshal(doc)
	if err != nil {
		v.addError(result, "document", "document is not JSON-serializable: "+err.Error())
		return
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = false
	t, err := loader.LoadFromData(data)
	if err != nil {
		v.addError(result, "document", "openapi3 loader: "+err.Error())
		return
	}

	before := len(result.Errors)
	report := func(path string, err error) {
		v.addError(result, path, "openapi3 validation: "+err.Error())
	}

	if c := t.Components; c != nil {
		validateUnits(ctx, "schemas", c.Schemas, report)
		validateUnits(ctx, "parameters", c.Parameters, report)
		validateUnits(ctx, "headers", c.Headers, report)
		validateUnits(ctx, "requestBodies", c.RequestBodies, report)
		validateUnits(ctx, "responses", c.Responses, report)
		validateUnits(ctx, "securitySchemes", c.SecuritySchemes, report)
		validateUnits(ctx, "examples", c.Examples, report)
	}
	if t.Info != nil {
		if err := t.Info.Validate(ctx); err != nil {
			report("info", err)
		}
	}
	if t.Paths != nil {
		validatePathItems(ctx, t.Paths, report)
	}
	if t.Security != nil {
		if err := t.Security.Validate(ctx); err != nil {
			report("security", err)
		}
	}
	if t.Servers != nil {
		if err := t.Servers.Validate(ctx); err != nil {
			report("servers", err)
		}
	}

	if len(result.Errors) == before {
		if err := t.Validate(ctx); err != nil {
			report("document", err)
		}
	}
}

// validateUnits validates every named entry of one components section in
// name order.
func validateUnits[U unit](ctx context.Context, kind string, units map[string]U, report func(string, error)) {
	var zero U
	for _, name := range maputil.SortedKeys(units) {
		path := issues.FormatPath("components", kind, name)
		if err := openapi3.ValidateIdentifier(name); err != nil {
			report(path, err)
			continue
		}
		u := units[name]
		if u == zero {
			continue
		}
		if err := u.Validate(ctx); err != nil {
			report(path, err)
		}
	}
}

// validatePathItems validates each operation separately, then the path as a
// whole (path parameters, path-level parameters) when no operation failed.
func validatePathItems(ctx context.Context, paths *openapi3.Paths, report func(string, error)) {
	items := paths.Map()
	for _, p := range maputil.SortedKeys(items) {
		item := items[p]
		if item == nil {
			continue
		}
		failed := false
		ops := item.Operations()
		for _, method := range maputil.SortedKeys(ops) {
			if err := ops[method].Validate(ctx); err != nil {
				report(issues.FormatPath("paths", p, strings.ToLower(method)), err)
				failed = true
			}
		}
		if failed {
			continue
		}
		single := openapi3.NewPaths(openapi3.WithPath(p, item))
		if err := single.Validate(ctx); err != nil {
			report(issues.FormatPath("paths", p), err)
		}
	}
}
