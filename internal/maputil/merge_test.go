package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		dst      map[string]any
		src      map[string]any
		expected map[string]any
	}{
		{
			name:     "nil destination",
			dst:      nil,
			src:      map[string]any{"a": 1},
			expected: map[string]any{"a": 1},
		},
		{
			name: "mappings are unioned",
			dst: map[string]any{"paths": map[string]any{
				"/a": map[string]any{"get": map[string]any{"operationId": "A"}},
			}},
			src: map[string]any{"paths": map[string]any{
				"/a": map[string]any{"post": map[string]any{"operationId": "B"}},
				"/b": map[string]any{},
			}},
			expected: map[string]any{"paths": map[string]any{
				"/a": map[string]any{
					"get":  map[string]any{"operationId": "A"},
					"post": map[string]any{"operationId": "B"},
				},
				"/b": map[string]any{},
			}},
		},
		{
			name:     "scalar last write wins",
			dst:      map[string]any{"info": map[string]any{"title": "old", "version": "1"}},
			src:      map[string]any{"info": map[string]any{"title": "new"}},
			expected: map[string]any{"info": map[string]any{"title": "new", "version": "1"}},
		},
		{
			name:     "sequences replaced not concatenated",
			dst:      map[string]any{"tags": []any{"a", "b"}},
			src:      map[string]any{"tags": []any{"c"}},
			expected: map[string]any{"tags": []any{"c"}},
		},
		{
			name:     "mapping replaced by scalar",
			dst:      map[string]any{"x": map[string]any{"y": 1}},
			src:      map[string]any{"x": "flat"},
			expected: map[string]any{"x": "flat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.dst, tt.src, nil)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMerge_ReportsConflicts(t *testing.T) {
	var conflicts []string
	dst := map[string]any{"info": map[string]any{"title": "a", "version": "1"}}
	src := map[string]any{"info": map[string]any{"title": "b", "version": "1"}}

	Merge(dst, src, func(path string, old, replacement any) {
		conflicts = append(conflicts, path)
		assert.Equal(t, "a", old)
		assert.Equal(t, "b", replacement)
	})

	assert.Equal(t, []string{"info/title"}, conflicts)
}

func TestMerge_DoesNotAliasSource(t *testing.T) {
	inner := map[string]any{"type": "object"}
	src := map[string]any{"schemas": map[string]any{"Foo": inner}}
	dst := Merge(nil, src, nil)

	dst["schemas"].(map[string]any)["Foo"].(map[string]any)["type"] = "string"
	assert.Equal(t, "object", inner["type"])
}

func TestDeepCopyAndEqual(t *testing.T) {
	orig := map[string]any{"a": []any{map[string]any{"b": 1}}, "c": "d"}
	cp := DeepCopy(orig)
	assert.True(t, Equal(orig, cp))

	cp.(map[string]any)["a"].([]any)[0].(map[string]any)["b"] = 2
	assert.False(t, Equal(orig, cp))
	assert.Equal(t, 1, orig["a"].([]any)[0].(map[string]any)["b"])

	assert.Equal(t, map[string]any{}, CopyMap(nil))
	assert.False(t, Equal([]any{1}, map[string]any{}))
}
