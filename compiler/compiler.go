package compiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/gocutover/open-api-specs/fragment"
	"github.com/gocutover/open-api-specs/internal/issues"
	"github.com/gocutover/open-api-specs/internal/maputil"
	"github.com/gocutover/open-api-specs/oaserrors"
	"github.com/gocutover/open-api-specs/validator"
)

// Result is one merged document plus what was found while building it.
type Result struct {
	// Scope names the document, usually a version token
	Scope string
	// Document is the merged OpenAPI document
	Document map[string]any
	// Files lists the relative paths of the merged fragments, in merge order
	Files []string
	// Fragments are the merged fragments, in merge order
	Fragments []*fragment.Fragment
	// Issues holds validation errors followed by warnings
	Issues []issues.Issue
	// Validation is the full validation result, nil when validation is off
	Validation *validator.ValidationResult
}

// Err returns an *oaserrors.ValidationError when validation found errors,
// otherwise nil.
func (r *Result) Err() error {
	if r == nil || r.Validation == nil {
		return nil
	}
	return r.Validation.Err(r.Scope)
}

// Compiler merges fragment files into one OpenAPI document.
type Compiler struct {
	cfg       *compileConfig
	loader    *fragment.Loader
	validator *validator.Validator
}

// New creates a Compiler.
func New(opts ...Option) (*Compiler, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("compiler: invalid options: %w", err)
	}
	c := &Compiler{
		cfg: cfg,
		loader: &fragment.Loader{
			Root:        cfg.root,
			APIPrefix:   cfg.apiPrefix,
			Logger:      cfg.logger,
			Concurrency: cfg.concurrency,
		},
	}
	if cfg.validate {
		if c.validator, err = validator.New(cfg.validatorOpts...); err != nil {
			return nil, fmt.Errorf("compiler: %w", err)
		}
	}
	return c, nil
}

// Loader returns the fragment loader configured for this compiler.
func (c *Compiler) Loader() *fragment.Loader {
	return c.loader
}

// Compile loads the given files and merges them. Files are loaded in
// parallel; a parse error in any file aborts the compile.
func (c *Compiler) Compile(ctx context.Context, paths []string) (*Result, error) {
	if c.cfg.root == "" {
		return nil, &oaserrors.ConfigError{Option: "root", Message: "a root directory is required to classify files"}
	}
	frags, err := c.loader.LoadAll(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("compiler: %w", err)
	}
	return c.CompileFragments(ctx, frags)
}

// CompileFragments merges already-loaded fragments.
//
// Fragments are merged in a deterministic order (index files first, then
// relative path), so the same inputs always produce the same document
// regardless of the order they were passed in. Conflicting leaves are
// last-write-wins and logged at debug level.
func (c *Compiler) CompileFragments(ctx context.Context, frags []*fragment.Fragment) (*Result, error) {
	log := c.cfg.logger.With("scope", c.cfg.scope)
	sorted := fragment.Sort(frags)

	result := &Result{
		Scope:     c.cfg.scope,
		Document:  make(map[string]any),
		Files:     make([]string, 0, len(sorted)),
		Fragments: sorted,
	}
	for _, f := range sorted {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel := f.RelPath
		maputil.Merge(result.Document, Transform(f), func(path string, old, replacement any) {
			log.Debug("merge conflict, last write wins", "path", path, "file", rel, "old", old, "new", replacement)
		})
		result.Files = append(result.Files, rel)
	}
	result.Document = fragment.StripPrivateKeys(result.Document)

	if c.validator != nil {
		v := c.validator.Validate(ctx, result.Document)
		result.Validation = v
		result.Issues = append(append(result.Issues, v.Errors...), v.Warnings...)
		if !v.Valid {
			log.Warn("compiled document has validation errors", "errors", v.ErrorCount, "suppressed", v.Suppressed)
			if c.cfg.strict {
				return result, result.Err()
			}
		}
	}

	log.Info("compiled document", "files", len(result.Files), "issues", len(result.Issues))
	return result, nil
}

// Compile is a convenience wrapper: New(opts...) then Compile.
func Compile(ctx context.Context, paths []string, opts ...Option) (*Result, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.Compile(ctx, paths)
}

// Summary renders a one-line description of the result.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d files", r.Scope, len(r.Files))
	if r.Validation != nil {
		fmt.Fprintf(&b, ", %d errors, %d warnings", r.Validation.ErrorCount, r.Validation.WarningCount)
		if r.Validation.Suppressed > 0 {
			fmt.Fprintf(&b, " (%d suppressed)", r.Validation.Suppressed)
		}
	}
	return b.String()
}
