package fragment

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Kind classifies a source file by its location under the root.
type Kind int

const (
	// KindOther is a file outside the root or without a YAML extension.
	KindOther Kind = iota
	// KindOperation is a draft operation file: <segments>/<method>.yml.
	KindOperation
	// KindVersionedOperation is a version override: <segments>/<method>/<version>.yml.
	KindVersionedOperation
	// KindComponent is a shared component file under one of the component folders.
	KindComponent
	// KindStatic is any other YAML file, merged into the document as is.
	KindStatic
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindOperation:
		return "operation"
	case KindVersionedOperation:
		return "versioned-operation"
	case KindComponent:
		return "component"
	case KindStatic:
		return "static"
	default:
		return "other"
	}
}

// IsOperation reports whether k is a draft or versioned operation file.
func (k Kind) IsOperation() bool {
	return k == KindOperation || k == KindVersionedOperation
}

// ComponentKind is the OpenAPI components namespace a component file feeds.
type ComponentKind string

const (
	ComponentExamples      ComponentKind = "examples"
	ComponentParameters    ComponentKind = "parameters"
	ComponentRequestBodies ComponentKind = "requestBodies"
	ComponentResponses     ComponentKind = "responses"
	ComponentSchemas       ComponentKind = "schemas"
)

// componentFolders maps on-disk folder names to component namespaces.
// The folder "requests" feeds "requestBodies".
var componentFolders = map[string]ComponentKind{
	"examples":   ComponentExamples,
	"parameters": ComponentParameters,
	"requests":   ComponentRequestBodies,
	"responses":  ComponentResponses,
	"schemas":    ComponentSchemas,
}

// DraftVersion is the implicit version of every unversioned file.
const DraftVersion = "draft"

var versionTokenRegex = regexp.MustCompile(`^[0-9][0-9.\-]*$`)

// IsVersionToken reports whether name looks like a dated version token
// ("20210101", "2021-01-01", "2021.01.01").
func IsVersionToken(name string) bool {
	return versionTokenRegex.MatchString(name)
}

// IsIndexName reports whether a file basename (without extension) follows
// the index naming convention: "index", "index.<x>" or "index_<x>".
func IsIndexName(base string) bool {
	return base == "index" || strings.HasPrefix(base, "index.") || strings.HasPrefix(base, "index_")
}

// IsYAML reports whether path has a .yml or .yaml extension.
func IsYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

// Classification is the result of classifying one file path.
type Classification struct {
	Kind Kind
	// RelPath is the slash-separated path relative to the root, with extension.
	RelPath string
	// Component is set for KindComponent.
	Component ComponentKind
	// Version is the embedded version token, or "" for draft.
	Version string
	// Method and PathTemplate are set for operation kinds. PathTemplate does
	// not carry the API prefix: "a/b/get.yml" yields "/a/b".
	Method       string
	PathTemplate string
	// Key is the prefixed operation key for operation kinds.
	Key OperationKey
	// Index is true for files following the index naming convention.
	Index bool
	// TopLevel is true for files directly under the root.
	TopLevel bool
}

// VersionOrDraft returns Version, or DraftVersion when unversioned.
func (c Classification) VersionOrDraft() string {
	if c.Version == "" {
		return DraftVersion
	}
	return c.Version
}

// Classify determines what a file under root contributes to the document.
// It never fails: paths that fit no convention are KindStatic (inside the
// root) or KindOther (outside it, or not YAML).
//
// Operation detection runs first. A basename equal to a method is a draft
// operation; a parent directory equal to a method makes the basename a
// version token. The token's shape is not checked here. Otherwise any
// directory named after a component folder makes the file a component file.
func Classify(path, root, prefix string) Classification {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || !IsYAML(path) {
		return Classification{Kind: KindOther, RelPath: filepath.ToSlash(path)}
	}
	rel = filepath.ToSlash(rel)
	c := Classification{RelPath: rel}

	trimmed := strings.TrimSuffix(rel, filepath.Ext(rel))
	segments := strings.Split(trimmed, "/")
	n := len(segments)
	base := segments[n-1]

	switch {
	case IsMethod(base):
		c.Kind = KindOperation
		c.Method = strings.ToLower(base)
		c.PathTemplate = "/" + strings.Join(segments[:n-1], "/")
	case n >= 2 && IsMethod(segments[n-2]):
		c.Kind = KindVersionedOperation
		c.Method = strings.ToLower(segments[n-2])
		c.PathTemplate = "/" + strings.Join(segments[:n-2], "/")
		c.Version = base
	}
	if c.Kind.IsOperation() {
		c.Key = NewOperationKey(c.Method, c.PathTemplate, prefix)
		return c
	}

	if IsVersionToken(base) {
		c.Version = base
	}
	c.Index = IsIndexName(base)
	c.TopLevel = n == 1
	for _, seg := range segments[:n-1] {
		if kind, ok := componentFolders[seg]; ok {
			c.Kind = KindComponent
			c.Component = kind
			return c
		}
	}
	c.Kind = KindStatic
	return c
}
