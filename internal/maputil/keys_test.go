package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]int
		want  []string
	}{
		{name: "status codes", input: map[string]int{"404": 1, "200": 2, "default": 3}, want: []string{"200", "404", "default"}},
		{name: "single", input: map[string]int{"get": 1}, want: []string{"get"}},
		{name: "empty", input: map[string]int{}, want: []string{}},
		{name: "nil", input: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SortedKeys(tt.input))
		})
	}
}

func TestStringKeys(t *testing.T) {
	in := map[string]any{
		"responses": map[any]any{
			200:       map[any]any{"description": "OK"},
			"default": map[string]any{"description": "Error"},
		},
		"tags": []any{map[any]any{true: "yes"}, "plain"},
	}

	want := map[string]any{
		"responses": map[string]any{
			"200":     map[string]any{"description": "OK"},
			"default": map[string]any{"description": "Error"},
		},
		"tags": []any{map[string]any{"true": "yes"}, "plain"},
	}
	assert.Equal(t, want, StringKeys(in))
	assert.Equal(t, 42, StringKeys(42))
}
