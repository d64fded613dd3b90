// Package testutil provides fragment-tree fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree writes files (slash-separated relative path to content) under a
// fresh temporary directory and returns it. The directory is removed when
// the test completes (via t.TempDir).
func WriteTree(t testing.TB, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	WriteFiles(t, root, files)
	return root
}

// WriteFiles writes files under an existing root, creating directories as
// needed.
func WriteFiles(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create fixture directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write fixture %s: %v", rel, err)
		}
	}
}

// WidgetTree is a small fragment tree whose draft document is valid
// OpenAPI 3.0:
//
//	GET  /api/widgets  draft and 20210101
//	POST /api/widgets  20210301 only
//
// The 20210101 GET carries a bare response schema and a documented
// example, so the 20210101 document does not validate.
func WidgetTree() map[string]string {
	return map[string]string{
		"index.yml":                 "openapi: 3.0.3\ninfo:\n  title: Widgets\n  version: draft\n",
		"schemas/widget.yml":        "Widget:\n  type: object\n  properties:\n    name:\n      type: string\n",
		"widgets/get.yml":           "id: listWidgets\nparameters:\n  - name: page\n    in: query\n    schema:\n      type: string\nresponses:\n  200:\n    description: Widgets\n",
		"widgets/get/20210101.yml":  "id: listWidgetsV1\nresponses:\n  200:\n    description: Widgets\n    schema: Widget\n    examples:\n      empty:\n        value: []\n",
		"widgets/post/20210301.yml": "id: createWidget\nrequestBody:\n  schema: Widget\nresponses:\n  201:\n    description: Created\n",
	}
}
