package fragment

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	root := filepath.FromSlash("/specs")
	tests := []struct {
		name string
		path string
		want Classification
	}{
		{
			name: "draft operation",
			path: "/specs/widgets/{id}/get.yml",
			want: Classification{
				Kind: KindOperation, RelPath: "widgets/{id}/get.yml", Method: "get",
				PathTemplate: "/widgets/{id}", Key: OperationKey{"get", "/api/widgets/{id}"},
			},
		},
		{
			name: "versioned operation",
			path: "/specs/widgets/post/20210101.yml",
			want: Classification{
				Kind: KindVersionedOperation, RelPath: "widgets/post/20210101.yml", Method: "post",
				PathTemplate: "/widgets", Version: "20210101", Key: OperationKey{"post", "/api/widgets"},
			},
		},
		{
			name: "version token shape not checked",
			path: "/specs/widgets/get/next.yml",
			want: Classification{
				Kind: KindVersionedOperation, RelPath: "widgets/get/next.yml", Method: "get",
				PathTemplate: "/widgets", Version: "next", Key: OperationKey{"get", "/api/widgets"},
			},
		},
		{
			name: "root operation",
			path: "/specs/get.yaml",
			want: Classification{
				Kind: KindOperation, RelPath: "get.yaml", Method: "get",
				PathTemplate: "/", Key: OperationKey{"get", "/api"},
			},
		},
		{
			name: "schemas component",
			path: "/specs/a/schemas/schemas.yml",
			want: Classification{Kind: KindComponent, RelPath: "a/schemas/schemas.yml", Component: ComponentSchemas},
		},
		{
			name: "requests folder feeds requestBodies",
			path: "/specs/requests/widget.yml",
			want: Classification{Kind: KindComponent, RelPath: "requests/widget.yml", Component: ComponentRequestBodies},
		},
		{
			name: "versioned component",
			path: "/specs/responses/Widget/20210301.yml",
			want: Classification{Kind: KindComponent, RelPath: "responses/Widget/20210301.yml", Component: ComponentResponses, Version: "20210301"},
		},
		{
			name: "top-level static",
			path: "/specs/info.yml",
			want: Classification{Kind: KindStatic, RelPath: "info.yml", TopLevel: true},
		},
		{
			name: "index static",
			path: "/specs/security/index.yml",
			want: Classification{Kind: KindStatic, RelPath: "security/index.yml", Index: true},
		},
		{
			name: "versioned static",
			path: "/specs/info/2021-02-01.yml",
			want: Classification{Kind: KindStatic, RelPath: "info/2021-02-01.yml", Version: "2021-02-01"},
		},
		{
			name: "outside root",
			path: "/elsewhere/get.yml",
			want: Classification{Kind: KindOther, RelPath: "/elsewhere/get.yml"},
		},
		{
			name: "not yaml",
			path: "/specs/README.md",
			want: Classification{Kind: KindOther, RelPath: "/specs/README.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(filepath.FromSlash(tt.path), root, DefaultAPIPrefix)
			tt.want.RelPath = filepath.ToSlash(tt.want.RelPath)
			if tt.want.Kind == KindOther {
				tt.want.RelPath = filepath.ToSlash(filepath.FromSlash(tt.path))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassification_VersionOrDraft(t *testing.T) {
	assert.Equal(t, DraftVersion, Classification{}.VersionOrDraft())
	assert.Equal(t, "20210101", Classification{Version: "20210101"}.VersionOrDraft())
}

func TestIsVersionToken(t *testing.T) {
	for _, s := range []string{"20210101", "2021-01-01", "2021.01.01", "1"} {
		assert.True(t, IsVersionToken(s), s)
	}
	for _, s := range []string{"draft", "index", "v1", "", "schemas"} {
		assert.False(t, IsVersionToken(s), s)
	}
}

func TestIsIndexName(t *testing.T) {
	assert.True(t, IsIndexName("index"))
	assert.True(t, IsIndexName("index.servers"))
	assert.True(t, IsIndexName("index_info"))
	assert.False(t, IsIndexName("indexes"))
	assert.False(t, IsIndexName("info"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "operation", KindOperation.String())
	assert.Equal(t, "versioned-operation", KindVersionedOperation.String())
	assert.Equal(t, "component", KindComponent.String())
	assert.Equal(t, "static", KindStatic.String())
	assert.Equal(t, "other", KindOther.String())
	assert.True(t, KindVersionedOperation.IsOperation())
	assert.False(t, KindComponent.IsOperation())
}
