package fragment

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
	"golang.org/x/sync/errgroup"

	"github.com/gocutover/open-api-specs/internal/maputil"
	"github.com/gocutover/open-api-specs/oaserrors"
)

// Fragment is one parsed YAML source file plus its classification.
// Fragments are never mutated after Load returns; transformations build new
// documents.
type Fragment struct {
	// SourcePath is the path the fragment was read from.
	SourcePath string
	// Content is the decoded document with string keys throughout and
	// top-level "_" keys removed.
	Content map[string]any

	Classification
}

// NewFragment builds a fragment from an already-decoded document. Top-level
// keys starting with "_" are dropped.
func NewFragment(sourcePath string, c Classification, content map[string]any) *Fragment {
	return &Fragment{
		SourcePath:     sourcePath,
		Content:        StripPrivateKeys(content),
		Classification: c,
	}
}

// StripPrivateKeys returns a shallow copy of doc without top-level keys that
// start with "_". Such keys hold file-local scratch data (shared anchors) and
// are never emitted.
func StripPrivateKeys(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if strings.HasPrefix(k, "_") {
			continue
		}
		out[k] = v
	}
	return out
}

// Loader reads and classifies fragment files under a root directory.
type Loader struct {
	// Root is the directory every path is classified against.
	Root string
	// APIPrefix is the prefix for operation keys. Defaults to DefaultAPIPrefix.
	APIPrefix string
	// Logger receives debug output. Defaults to NopLogger.
	Logger Logger
	// Concurrency bounds LoadAll. Zero means GOMAXPROCS.
	Concurrency int
}

// NewLoader returns a Loader for root with default settings.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, APIPrefix: DefaultAPIPrefix, Logger: NopLogger{}}
}

// Classify classifies path against the loader's root and prefix.
func (l *Loader) Classify(path string) Classification {
	return Classify(path, l.Root, l.APIPrefix)
}

// Discover returns every YAML file under the root, sorted by path.
func (l *Loader) Discover() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != l.Root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsYAML(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fragment: discovering files under %s: %w", l.Root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads, checks and decodes one file.
//
// The raw text is checked for malformed $ref literals before decoding; a
// match returns *oaserrors.ReferenceSyntaxError. Malformed YAML or a
// non-mapping root returns *oaserrors.ParseError carrying the input. An
// empty file decodes to an empty document.
func (l *Loader) Load(path string) (*Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fragment: reading %s: %w", path, err)
	}
	c := l.Classify(path)
	content, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	OrNop(l.Logger).Debug("loaded fragment", "path", c.RelPath, "kind", c.Kind.String(), "version", c.VersionOrDraft())
	return NewFragment(path, c, content), nil
}

// LoadAll loads every path in parallel and returns the fragments in the
// order of paths. The first failure cancels the remaining loads.
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([]*Fragment, error) {
	frags := make([]*Fragment, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	limit := l.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := l.Load(path)
			if err != nil {
				return err
			}
			frags[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frags, nil
}

// Parse decodes YAML source into a string-keyed document.
func Parse(path string, data []byte) (map[string]any, error) {
	if err := CheckReferenceSyntax(path, data); err != nil {
		return nil, err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &oaserrors.ParseError{
			Path:    path,
			Line:    yamlErrorLine(err),
			Message: "invalid YAML",
			Source:  data,
			Cause:   err,
		}
	}
	if raw == nil {
		return map[string]any{}, nil
	}
	doc, ok := maputil.StringKeys(raw).(map[string]any)
	if !ok {
		return nil, &oaserrors.ParseError{
			Path:    path,
			Message: fmt.Sprintf("document root must be a mapping, got %T", raw),
			Source:  data,
		}
	}
	return doc, nil
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

func yamlErrorLine(err error) int {
	m := yamlLineRegex.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// refKeyRegex matches a line whose mapping key is $ref, optionally as a
// sequence item or quoted. The rest of the line after the colon is captured.
var refKeyRegex = regexp.MustCompile(`^\s*(?:-\s+)?["']?\$ref["']?:(.*)$`)

// CheckReferenceSyntax scans raw YAML for $ref keys that would not decode as
// intended: a missing space after the colon ("$ref:Foo"), or an unquoted
// pointer ("$ref: #/components/...") which YAML reads as a comment. Only
// lines that start with the key are checked, so prose mentioning "$ref:"
// inside descriptions is left alone.
func CheckReferenceSyntax(path string, data []byte) error {
	for i, line := range strings.Split(string(data), "\n") {
		m := refKeyRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rest := strings.TrimRight(m[1], " \t\r")
		if rest == "" {
			continue
		}
		if rest[0] != ' ' && rest[0] != '\t' || strings.HasPrefix(strings.TrimSpace(rest), "#") {
			return &oaserrors.ReferenceSyntaxError{Path: path, Line: i + 1, Text: strings.TrimSpace(line)}
		}
	}
	return nil
}

// Sort orders fragments for merging: index files first, then by relative
// path. The sort is stable and does not modify frags.
func Sort(frags []*Fragment) []*Fragment {
	out := make([]*Fragment, len(frags))
	copy(out, frags)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Index != out[j].Index {
			return out[i].Index
		}
		return out[i].RelPath < out[j].RelPath
	})
	return out
}
