package versions

import (
	"context"
	"fmt"
	"path"
	"slices"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/gocutover/open-api-specs/compiler"
	"github.com/gocutover/open-api-specs/fragment"
	"github.com/gocutover/open-api-specs/internal/maputil"
	"github.com/gocutover/open-api-specs/oaserrors"
)

// Draft is the implicit version of every unversioned file. It is always
// the last element of the version set.
const Draft = fragment.DraftVersion

// Metadata is what a test declares about the versions it should run
// against.
type Metadata struct {
	// Draft restricts the run to the draft version.
	Draft bool
	// IncludeAfter excludes this version and everything before it.
	IncludeAfter string
	// IncludeUntil includes this version and nothing after it.
	IncludeUntil string
}

// Table maps an operation to its fragments by version token.
type Table map[fragment.OperationKey]map[string]*fragment.Fragment

// snapshot is everything one scan of the root produced.
type snapshot struct {
	table    Table
	versions []string
	// static holds every non-operation fragment.
	static []*fragment.Fragment
}

// Index answers version questions about a source tree. The tree is scanned
// on first use and cached until Reset. An Index is safe for concurrent use;
// concurrent first calls share one scan.
type Index struct {
	cfg *indexConfig

	group singleflight.Group

	mu         sync.Mutex
	generation int
	snap       *snapshot
	results    map[string]*compiler.Result
}

// New creates an Index. Nothing is read until the first query.
func New(opts ...Option) (*Index, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("versions: invalid options: %w", err)
	}
	return &Index{cfg: cfg, results: make(map[string]*compiler.Result)}, nil
}

// Root returns the indexed directory.
func (i *Index) Root() string {
	return i.cfg.root
}

// APIPrefix returns the prefix carried by operation keys.
func (i *Index) APIPrefix() string {
	return i.cfg.apiPrefix
}

// DraftOnly reports whether FindRange is pinned to the draft version.
func (i *Index) DraftOnly() bool {
	return i.cfg.draftOnly
}

// Reset drops every cached scan and document. The next query rescans the
// root, picking up changed files.
func (i *Index) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.generation++
	i.snap = nil
	i.results = make(map[string]*compiler.Result)
}

// Scan reads the tree now instead of on first use, so ctx can cancel the
// load. It is a no-op when a scan is already cached.
func (i *Index) Scan(ctx context.Context) error {
	_, err := i.load(ctx)
	return err
}

func (i *Index) snapshot() (*snapshot, error) {
	return i.load(context.Background())
}

func (i *Index) load(ctx context.Context) (*snapshot, error) {
	i.mu.Lock()
	if i.snap != nil {
		s := i.snap
		i.mu.Unlock()
		return s, nil
	}
	gen := i.generation
	i.mu.Unlock()

	v, err, _ := i.group.Do(fmt.Sprintf("scan/%d", gen), func() (any, error) {
		s, err := i.scan(ctx)
		if err != nil {
			return nil, err
		}
		i.mu.Lock()
		if i.generation == gen {
			i.snap = s
		}
		i.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*snapshot), nil
}

func (i *Index) scan(ctx context.Context) (*snapshot, error) {
	loader := &fragment.Loader{Root: i.cfg.root, APIPrefix: i.cfg.apiPrefix, Logger: i.cfg.logger}
	paths, err := loader.Discover()
	if err != nil {
		return nil, fmt.Errorf("versions: %w", err)
	}
	frags, err := loader.LoadAll(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("versions: %w", err)
	}

	s := &snapshot{table: make(Table)}
	seen := make(map[string]bool)
	for _, f := range frags {
		if !f.Kind.IsOperation() {
			s.static = append(s.static, f)
			continue
		}
		version := f.VersionOrDraft()
		entry := s.table[f.Key]
		if entry == nil {
			entry = make(map[string]*fragment.Fragment)
			s.table[f.Key] = entry
		}
		entry[version] = f
		if version != Draft {
			seen[version] = true
		}
	}
	s.versions = append(maputil.SortedKeys(seen), Draft)

	i.cfg.logger.Info("indexed source tree", "root", i.cfg.root, "operations", len(s.table), "versions", len(s.versions))
	return s, nil
}

// Versions returns every version token found on an operation file, sorted,
// with Draft appended last. Sorting is lexicographic, which orders
// YYYYMMDD and YYYY-MM-DD tokens correctly but not arbitrary version
// strings.
func (i *Index) Versions() ([]string, error) {
	s, err := i.snapshot()
	if err != nil {
		return nil, err
	}
	return slices.Clone(s.versions), nil
}

// Latest returns the newest dated version, or *oaserrors.EmptyVersionSetError
// when no dated version exists.
func (i *Index) Latest() (string, error) {
	vs, err := i.Versions()
	if err != nil {
		return "", err
	}
	if len(vs) < 2 {
		return "", &oaserrors.EmptyVersionSetError{Root: i.cfg.root}
	}
	return vs[len(vs)-2], nil
}

// Range returns the versions strictly after `after` up to and including
// `until`, in ascending order.
//
// An empty or unknown `after` starts at the first version. An empty or
// unknown `until` ends at the newest dated version. The result is empty
// when the bounds cross.
func (i *Index) Range(after, until string) ([]string, error) {
	vs, err := i.Versions()
	if err != nil {
		return nil, err
	}
	return versionRange(vs, after, until), nil
}

func versionRange(vs []string, after, until string) []string {
	start := 0
	if idx := slices.Index(vs, after); after != "" && idx >= 0 {
		start = idx + 1
	}
	end := len(vs) - 2
	if idx := slices.Index(vs, until); until != "" && idx >= 0 {
		end = idx
	}
	if start > end {
		return []string{}
	}
	return slices.Clone(vs[start : end+1])
}

// FindRange returns the versions a test with the given metadata runs
// against, newest first. It returns only Draft when m.Draft is set or the
// index is in draft-only mode.
func (i *Index) FindRange(m Metadata) ([]string, error) {
	if m.Draft || i.cfg.draftOnly {
		return []string{Draft}, nil
	}
	vs, err := i.Range(m.IncludeAfter, m.IncludeUntil)
	if err != nil {
		return nil, err
	}
	slices.Reverse(vs)
	return vs, nil
}

// Operations returns every indexed operation key, sorted by String().
func (i *Index) Operations() ([]fragment.OperationKey, error) {
	s, err := i.snapshot()
	if err != nil {
		return nil, err
	}
	return sortedKeys(s.table), nil
}

func sortedKeys(t Table) []fragment.OperationKey {
	keys := make([]fragment.OperationKey, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a].String() < keys[b].String() })
	return keys
}

// VersionsOf returns the version tokens defined for one operation, sorted
// with Draft last when present.
func (i *Index) VersionsOf(key fragment.OperationKey) ([]string, error) {
	s, err := i.snapshot()
	if err != nil {
		return nil, err
	}
	entry, ok := s.table[key]
	if !ok {
		return nil, notFound(s, key, "", false)
	}
	var out []string
	for _, v := range maputil.SortedKeys(entry) {
		if v != Draft {
			out = append(out, v)
		}
	}
	if _, ok := entry[Draft]; ok {
		out = append(out, Draft)
	}
	return out, nil
}

// FragmentFor resolves the fragment for an operation at a version: the
// exact version when defined, otherwise the draft.
func (i *Index) FragmentFor(key fragment.OperationKey, version string) (*fragment.Fragment, error) {
	s, err := i.snapshot()
	if err != nil {
		return nil, err
	}
	entry, ok := s.table[key]
	if !ok {
		return nil, notFound(s, key, version, false)
	}
	if f, ok := entry[version]; ok {
		return f, nil
	}
	if f, ok := entry[Draft]; ok {
		return f, nil
	}
	return nil, notFound(s, key, version, true)
}

// TemplateFor returns a copy of the document for an operation at a version,
// falling back to the draft. It fails with *oaserrors.OperationNotFoundError
// when the operation is unknown, or when it has neither the version nor a
// draft (errors.Is matches oaserrors.ErrVersionNotFound in that case).
func (i *Index) TemplateFor(key fragment.OperationKey, version string) (map[string]any, error) {
	f, err := i.FragmentFor(key, version)
	if err != nil {
		return nil, err
	}
	return maputil.CopyMap(f.Content), nil
}

func notFound(s *snapshot, key fragment.OperationKey, version string, versionMissing bool) error {
	keys := sortedKeys(s.table)
	known := make([]string, len(keys))
	for n, k := range keys {
		known[n] = k.String()
	}
	return &oaserrors.OperationNotFoundError{
		Key:            key.String(),
		Version:        version,
		Known:          known,
		VersionMissing: versionMissing,
	}
}

// StaticFragmentsFor selects the non-operation fragments that apply to a
// version. For Draft that is every unversioned file. For a dated version it
// is the unversioned root-level and index files plus every file named after
// the version token.
func (i *Index) StaticFragmentsFor(version string) ([]*fragment.Fragment, error) {
	s, err := i.snapshot()
	if err != nil {
		return nil, err
	}
	var out []*fragment.Fragment
	for _, f := range s.static {
		if staticApplies(f, version) {
			out = append(out, f)
		}
	}
	return fragment.Sort(out), nil
}

// componentFallback returns the unversioned component fragments a dated
// document inherits. A component directory holding a file for the version
// replaces that directory's unversioned files, the same way a versioned
// operation file replaces the operation's draft.
func componentFallback(s *snapshot, version string) []*fragment.Fragment {
	overridden := make(map[string]bool)
	for _, f := range s.static {
		if f.Kind == fragment.KindComponent && f.Version == version {
			overridden[path.Dir(f.RelPath)] = true
		}
	}
	var out []*fragment.Fragment
	for _, f := range s.static {
		if f.Kind != fragment.KindComponent || f.Version != "" || staticApplies(f, version) {
			continue
		}
		if !overridden[path.Dir(f.RelPath)] {
			out = append(out, f)
		}
	}
	return out
}

func staticApplies(f *fragment.Fragment, version string) bool {
	if version == Draft {
		return f.Version == ""
	}
	if f.Version == "" {
		return f.TopLevel || f.Index
	}
	return f.Version == version
}

// StaticDocsFor compiles the non-operation files that apply to a version.
// The result is cached per version until Reset.
func (i *Index) StaticDocsFor(version string) (*compiler.Result, error) {
	return i.StaticDocsForContext(context.Background(), version)
}

// StaticDocsForContext is StaticDocsFor with a context for loading and
// compiling.
func (i *Index) StaticDocsForContext(ctx context.Context, version string) (*compiler.Result, error) {
	if _, err := i.load(ctx); err != nil {
		return nil, err
	}
	return i.cached("static/"+version, func() (*compiler.Result, error) {
		frags, err := i.StaticFragmentsFor(version)
		if err != nil {
			return nil, err
		}
		return i.compile(ctx, version, frags)
	})
}

// DocumentFor compiles the complete document for a version: its static
// fragments plus every operation resolved at that version. A dated version
// also inherits the unversioned component files, unless a component file
// for the version replaces them, so the operations it serves through the
// draft fallback keep resolving. Operations that have neither the version
// nor a draft are left out. The result is cached per version until Reset.
func (i *Index) DocumentFor(version string) (*compiler.Result, error) {
	return i.DocumentForContext(context.Background(), version)
}

// DocumentForContext is DocumentFor with a context for loading and
// compiling.
func (i *Index) DocumentForContext(ctx context.Context, version string) (*compiler.Result, error) {
	s, err := i.load(ctx)
	if err != nil {
		return nil, err
	}
	return i.cached("document/"+version, func() (*compiler.Result, error) {
		frags, err := i.StaticFragmentsFor(version)
		if err != nil {
			return nil, err
		}
		if version != Draft {
			frags = append(frags, componentFallback(s, version)...)
		}
		for _, key := range sortedKeys(s.table) {
			f, err := i.FragmentFor(key, version)
			if err != nil {
				i.cfg.logger.Debug("operation skipped", "operation", key.String(), "version", version, "error", err)
				continue
			}
			frags = append(frags, f)
		}
		return i.compile(ctx, version, frags)
	})
}

// Documents compiles DocumentFor every version, in Versions order.
func (i *Index) Documents() ([]*compiler.Result, error) {
	return i.DocumentsContext(context.Background())
}

// DocumentsContext is Documents with a context. It stops at the first
// version whose compile fails or is cancelled.
func (i *Index) DocumentsContext(ctx context.Context) ([]*compiler.Result, error) {
	s, err := i.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*compiler.Result, 0, len(s.versions))
	for _, v := range s.versions {
		r, err := i.DocumentForContext(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("versions: compiling %s: %w", v, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (i *Index) compile(ctx context.Context, version string, frags []*fragment.Fragment) (*compiler.Result, error) {
	opts := append([]compiler.Option{
		compiler.WithRoot(i.cfg.root),
		compiler.WithAPIPrefix(i.cfg.apiPrefix),
		compiler.WithLogger(i.cfg.logger),
	}, i.cfg.compilerOpts...)
	opts = append(opts, compiler.WithScope(version))
	c, err := compiler.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("versions: %w", err)
	}
	return c.CompileFragments(ctx, frags)
}

// cached returns the result stored under key, computing it at most once per
// generation even under concurrent callers. Failed computations are not
// stored.
func (i *Index) cached(key string, compute func() (*compiler.Result, error)) (*compiler.Result, error) {
	i.mu.Lock()
	if r, ok := i.results[key]; ok {
		i.mu.Unlock()
		return r, nil
	}
	gen := i.generation
	i.mu.Unlock()

	v, err, _ := i.group.Do(fmt.Sprintf("%s/%d", key, gen), func() (any, error) {
		r, err := compute()
		if err != nil {
			return r, err
		}
		i.mu.Lock()
		if i.generation == gen {
			i.results[key] = r
		}
		i.mu.Unlock()
		return r, nil
	})
	r, _ := v.(*compiler.Result)
	return r, err
}
