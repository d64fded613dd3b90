package refs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(target string) map[string]any {
	return map[string]any{"$ref": target}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want map[string]any
	}{
		{
			name: "property shorthand",
			in: map[string]any{"components": map[string]any{"schemas": map[string]any{
				"Foo": map[string]any{"properties": map[string]any{"bar": "Baz"}},
			}}},
			want: map[string]any{"components": map[string]any{"schemas": map[string]any{
				"Foo": map[string]any{"properties": map[string]any{"bar": ref("#/components/schemas/Baz")}},
			}}},
		},
		{
			name: "property composition array",
			in: map[string]any{"components": map[string]any{"schemas": map[string]any{
				"Pet": map[string]any{"properties": map[string]any{
					"kind": map[string]any{"oneOf": []any{"Cat", "Dog"}},
				}},
			}}},
			want: map[string]any{"components": map[string]any{"schemas": map[string]any{
				"Pet": map[string]any{"properties": map[string]any{
					"kind": map[string]any{"oneOf": []any{ref("#/components/schemas/Cat"), ref("#/components/schemas/Dog")}},
				}},
			}}},
		},
		{
			name: "component schema alias and items",
			in: map[string]any{"components": map[string]any{"schemas": map[string]any{
				"Alias":   "Widget",
				"Widgets": map[string]any{"type": "array", "items": "Widget"},
			}}},
			want: map[string]any{"components": map[string]any{"schemas": map[string]any{
				"Alias":   ref("#/components/schemas/Widget"),
				"Widgets": map[string]any{"type": "array", "items": ref("#/components/schemas/Widget")},
			}}},
		},
		{
			name: "component schema allOf",
			in: map[string]any{"components": map[string]any{"schemas": map[string]any{
				"Admin": map[string]any{"allOf": []any{"User", map[string]any{"type": "object"}}},
			}}},
			want: map[string]any{"components": map[string]any{"schemas": map[string]any{
				"Admin": map[string]any{"allOf": []any{ref("#/components/schemas/User"), map[string]any{"type": "object"}}},
			}}},
		},
		{
			name: "component response schema",
			in: map[string]any{"components": map[string]any{"responses": map[string]any{
				"resource": map[string]any{"schema": "Widget"},
			}}},
			want: map[string]any{"components": map[string]any{"responses": map[string]any{
				"resource": map[string]any{"schema": ref("#/components/responses/Widget/content/application~1json/schema")},
			}}},
		},
		{
			name: "request body media type schema",
			in: map[string]any{"components": map[string]any{"requestBodies": map[string]any{
				"create": map[string]any{"content": map[string]any{"application/json": map[string]any{"schema": "Widget"}}},
			}}},
			want: map[string]any{"components": map[string]any{"requestBodies": map[string]any{
				"create": map[string]any{"content": map[string]any{"application/json": map[string]any{
					"schema": ref("#/components/requestBodies/Widget/content/application~1json/schema"),
				}}},
			}}},
		},
		{
			name: "operation response schema",
			in: map[string]any{"paths": map[string]any{"/a": map[string]any{"get": map[string]any{
				"responses": map[string]any{"200": map[string]any{"schema": "Foo", "description": "ok"}},
			}}}},
			want: map[string]any{"paths": map[string]any{"/a": map[string]any{"get": map[string]any{
				"responses": map[string]any{"200": map[string]any{"schema": ref("#/components/schemas/Foo"), "description": "ok"}},
			}}}},
		},
		{
			name: "operation request body media type defaults by section",
			in: map[string]any{"paths": map[string]any{"/a": map[string]any{"post": map[string]any{
				"requestBody": map[string]any{"content": map[string]any{"application/json": map[string]any{"schema": "NewA"}}},
			}}}},
			want: map[string]any{"paths": map[string]any{"/a": map[string]any{"post": map[string]any{
				"requestBody": map[string]any{"content": map[string]any{"application/json": map[string]any{
					"schema": ref("#/components/requestBodies/NewA/content/application~1json/schema"),
				}}},
			}}}},
		},
		{
			name: "full pointer kept as target",
			in: map[string]any{"components": map[string]any{"schemas": map[string]any{
				"Foo": map[string]any{"properties": map[string]any{"bar": "#/components/schemas/Other"}},
			}}},
			want: map[string]any{"components": map[string]any{"schemas": map[string]any{
				"Foo": map[string]any{"properties": map[string]any{"bar": ref("#/components/schemas/Other")}},
			}}},
		},
		{
			name: "unrelated strings untouched",
			in: map[string]any{
				"info": map[string]any{"title": "Widgets", "version": "1"},
				"components": map[string]any{"schemas": map[string]any{
					"Foo": map[string]any{"type": "object", "description": "a foo", "required": []any{"bar"}},
				}},
				"paths": map[string]any{"/a": map[string]any{"get": map[string]any{
					"operationId": "A",
					"parameters":  []any{"page"},
				}}},
			},
			want: map[string]any{
				"info": map[string]any{"title": "Widgets", "version": "1"},
				"components": map[string]any{"schemas": map[string]any{
					"Foo": map[string]any{"type": "object", "description": "a foo", "required": []any{"bar"}},
				}},
				"paths": map[string]any{"/a": map[string]any{"get": map[string]any{
					"operationId": "A",
					"parameters":  []any{"page"},
				}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	doc := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"Foo": map[string]any{"properties": map[string]any{
					"bar":        "Baz",
					"properties": "Nested",
					"kind":       map[string]any{"anyOf": []any{"A", "B"}},
				}},
				"List": map[string]any{"items": "Foo"},
			},
			"responses": map[string]any{"ok": map[string]any{"schema": "Foo"}},
		},
		"paths": map[string]any{"/a": map[string]any{"get": map[string]any{
			"responses": map[string]any{"200": map[string]any{"schema": "Foo"}},
		}}},
	}

	once := Normalize(doc)
	twice := Normalize(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Normalize is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestNormalize_DoesNotModifyInput(t *testing.T) {
	in := map[string]any{"components": map[string]any{"schemas": map[string]any{"Alias": "Widget"}}}
	_ = Normalize(in)
	assert.Equal(t, "Widget", in["components"].(map[string]any)["schemas"].(map[string]any)["Alias"])
	assert.Nil(t, Normalize(nil))
}

func TestNormalizeAt(t *testing.T) {
	body := map[string]any{"content": map[string]any{"application/json": map[string]any{"schema": "Widget"}}}
	got := NormalizeAt([]string{"requestBody"}, body)
	want := map[string]any{"content": map[string]any{"application/json": map[string]any{
		"schema": ref("#/components/requestBodies/Widget/content/application~1json/schema"),
	}}}
	require.Equal(t, want, got)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		path  []string
		value string
		want  string
		ok    bool
	}{
		{[]string{"properties", "a"}, "X", "#/components/schemas/X", true},
		{[]string{"properties", "a", "not"}, "X", "#/components/schemas/X", true},
		{[]string{"components", "schemas", "A", "items", "oneOf"}, "X", "#/components/schemas/X", true},
		{[]string{"components", "responses", "r", "schema", "allOf"}, "X", "#/components/responses/X/content/application~1json/schema", true},
		{[]string{"components", "parameters", "p", "schema"}, "X", "", false},
		{[]string{"content", "application/json", "schema"}, "X", "#/components/responses/X/content/application~1json/schema", true},
		{[]string{"properties", "$ref"}, "#/components/schemas/X", "", false},
		{nil, "X", "", false},
	}
	for _, tt := range tests {
		got, ok := Match(tt.path, tt.value)
		assert.Equal(t, tt.ok, ok, "%v", tt.path)
		assert.Equal(t, tt.want, got, "%v", tt.path)
	}
}
