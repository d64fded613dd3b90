package compiler

import (
	"github.com/gocutover/open-api-specs/fragment"
	"github.com/gocutover/open-api-specs/internal/maputil"
	"github.com/gocutover/open-api-specs/internal/pathutil"
	"github.com/gocutover/open-api-specs/refs"
)

// Transform returns the document a fragment contributes to the merge:
// content-shaped, wrapped at its path position and reference-expanded.
// f is not modified.
func Transform(f *fragment.Fragment) map[string]any {
	content := maputil.CopyMap(f.Content)

	var wrapped map[string]any
	switch {
	case f.Kind.IsOperation():
		wrapped = map[string]any{
			"paths": map[string]any{
				f.PathTemplate: map[string]any{
					f.Method: RenameOperationID(content),
				},
			},
		}
	case f.Kind == fragment.KindComponent:
		if f.Component == fragment.ComponentRequestBodies || f.Component == fragment.ComponentResponses {
			content = ContentShape(content)
		}
		wrapped = map[string]any{
			"components": map[string]any{
				string(f.Component): content,
			},
		}
	default:
		wrapped = content
	}
	return refs.Normalize(wrapped)
}

// RenameOperationID moves an "id" key to "operationId" unless operationId
// is already set. op is modified and returned.
func RenameOperationID(op map[string]any) map[string]any {
	id, ok := op["id"]
	if !ok {
		return op
	}
	delete(op, "id")
	if _, exists := op["operationId"]; !exists {
		op["operationId"] = id
	}
	return op
}

// ContentShape nests bare schema and examples keys of every entry in a
// requestBodies or responses component map under content/application/json.
// Entries without either key, and non-mapping entries, are kept as is.
func ContentShape(entries map[string]any) map[string]any {
	out := make(map[string]any, len(entries))
	for name, v := range entries {
		entry, ok := v.(map[string]any)
		if !ok {
			out[name] = v
			continue
		}
		out[name] = WrapContent(entry)
	}
	return out
}

// WrapContent nests bare schema and examples keys of one request body or
// response under content/application/json. Values already present in the
// JSON media type win over the bare ones. entry is not modified.
func WrapContent(entry map[string]any) map[string]any {
	schema, hasSchema := entry["schema"]
	examples, hasExamples := entry["examples"]
	if !hasSchema && !hasExamples {
		return entry
	}

	out := make(map[string]any, len(entry))
	for k, v := range entry {
		if k == "schema" || k == "examples" {
			continue
		}
		out[k] = v
	}
	content, _ := out["content"].(map[string]any)
	content = maputil.CopyMap(content)
	media, _ := content[pathutil.JSONMediaType].(map[string]any)
	media = maputil.CopyMap(media)
	if _, ok := media["schema"]; hasSchema && !ok {
		media["schema"] = schema
	}
	if _, ok := media["examples"]; hasExamples && !ok {
		media["examples"] = examples
	}
	content[pathutil.JSONMediaType] = media
	out["content"] = content
	return out
}
