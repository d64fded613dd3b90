package versions

import (
	"github.com/gocutover/open-api-specs/compiler"
	"github.com/gocutover/open-api-specs/fragment"
	"github.com/gocutover/open-api-specs/oaserrors"
)

// Option is a function that configures an Index
type Option func(*indexConfig) error

// indexConfig holds configuration for an Index
type indexConfig struct {
	root         string
	apiPrefix    string
	draftOnly    bool
	logger       fragment.Logger
	compilerOpts []compiler.Option
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*indexConfig, error) {
	cfg := &indexConfig{
		apiPrefix: fragment.DefaultAPIPrefix,
		draftOnly: true,
		logger:    fragment.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.root == "" {
		return nil, &oaserrors.ConfigError{Option: "root", Message: "a source root directory is required"}
	}
	return cfg, nil
}

// WithRoot sets the source directory to index. Required.
func WithRoot(root string) Option {
	return func(cfg *indexConfig) error {
		cfg.root = root
		return nil
	}
}

// WithAPIPrefix sets the prefix carried by operation keys.
// Default: "/api"
func WithAPIPrefix(prefix string) Option {
	return func(cfg *indexConfig) error {
		cfg.apiPrefix = prefix
		return nil
	}
}

// WithDraftOnly makes FindRange always return only the draft version,
// skipping replay of historical versions.
// Default: true
func WithDraftOnly(enabled bool) Option {
	return func(cfg *indexConfig) error {
		cfg.draftOnly = enabled
		return nil
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l fragment.Logger) Option {
	return func(cfg *indexConfig) error {
		cfg.logger = fragment.OrNop(l)
		return nil
	}
}

// WithCompilerOptions passes options to every compile the index runs
// (static documents and per-version documents).
func WithCompilerOptions(opts ...compiler.Option) Option {
	return func(cfg *indexConfig) error {
		cfg.compilerOpts = append(cfg.compilerOpts, opts...)
		return nil
	}
}
