package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocutover/open-api-specs/internal/testutil"
)

// writeTree writes a fragment tree under a fresh temp dir and returns it.
// The index cache is cleared so every test scans its own tree.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	indexes.reset()
	t.Cleanup(indexes.reset)
	return testutil.WriteTree(t, files)
}

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		items  []int
		offset int
		limit  int
		want   []int
	}{
		{name: "default limit returns all when under 100", items: items, want: []int{0, 1, 2, 3, 4}},
		{name: "explicit limit", items: items, limit: 2, want: []int{0, 1}},
		{name: "offset only", items: items, offset: 2, want: []int{2, 3, 4}},
		{name: "offset and limit", items: items, offset: 1, limit: 2, want: []int{1, 2}},
		{name: "offset beyond end", items: items, offset: 5, limit: 2, want: nil},
		{name: "negative offset", items: items, offset: -1, limit: 2, want: nil},
		{name: "limit exceeds remaining", items: items, offset: 3, limit: 10, want: []int{3, 4}},
		{name: "nil slice", items: nil, limit: 2, want: nil},
		{name: "overflow limit", items: items, offset: 1, limit: math.MaxInt, want: []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(tt.items, tt.offset, tt.limit))
		})
	}
}

func TestPaginate_DefaultLimit(t *testing.T) {
	items := make([]int, 150)
	got := paginate(items, 0, 0)
	assert.Len(t, got, defaultLimit)
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[string](0))
	s := makeSlice[string](3)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	assert.Equal(t, 3, cap(s))
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error returns empty string", err: nil, want: ""},
		{
			name: "strips absolute path",
			err:  fmt.Errorf("reading /home/user/specs/widgets/get.yml: no such file"),
			want: "reading <path>: no such file",
		},
		{
			name: "keeps operation keys",
			err:  errors.New("operation not found: /api/widgets/get"),
			want: "operation not found: /api/widgets/get",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}

func TestErrResult(t *testing.T) {
	r := errResult(errors.New("boom at /tmp/x/y.yml"))
	assert.True(t, r.IsError)
	require.Len(t, r.Content, 1)
	text, ok := r.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "boom at <path>", text.Text)
}

func TestTreeInput_Config(t *testing.T) {
	root := writeTree(t, testutil.WidgetTree())
	draftOnly := false

	c, err := treeInput{Root: root, APIPrefix: "/v2", DraftOnly: &draftOnly}.config()
	require.NoError(t, err)
	assert.Equal(t, root, c.Root)
	assert.Equal(t, "/v2", c.APIPrefix)
	assert.False(t, c.DraftOnly)
	assert.False(t, c.Strict)

	_, err = treeInput{Root: filepath.Join(root, "missing")}.config()
	assert.Error(t, err)

	_, err = treeInput{Root: filepath.Join(root, "index.yml")}.config()
	assert.Error(t, err)
}

func TestIndexStore_ReusesIndex(t *testing.T) {
	root := writeTree(t, testutil.WidgetTree())

	a, err := treeInput{Root: root}.index(context.Background())
	require.NoError(t, err)
	b, err := treeInput{Root: root, Refresh: true}.index(context.Background())
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := treeInput{Root: root, APIPrefix: "/v2"}.index(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}
