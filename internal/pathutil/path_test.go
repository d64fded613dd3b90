package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathParams(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single parameter", input: "/widgets/{id}", want: []string{"id"}},
		{name: "multiple parameters", input: "/runbooks/{runbookId}/tasks/{taskId}", want: []string{"runbookId", "taskId"}},
		{name: "no parameters", input: "/widgets", want: nil},
		{name: "parameter at start", input: "{version}/widgets", want: []string{"version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PathParams(tt.input))
		})
	}
}
