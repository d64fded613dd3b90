package compiler

import (
	"strings"

	"github.com/gocutover/open-api-specs/fragment"
	"github.com/gocutover/open-api-specs/oaserrors"
	"github.com/gocutover/open-api-specs/validator"
)

// Option is a function that configures a Compiler
type Option func(*compileConfig) error

// compileConfig holds configuration for a Compiler
type compileConfig struct {
	root          string
	apiPrefix     string
	logger        fragment.Logger
	validate      bool
	strict        bool
	concurrency   int
	scope         string
	validatorOpts []validator.Option
}

// applyOptions applies option functions on top of the defaults
func applyOptions(opts ...Option) (*compileConfig, error) {
	cfg := &compileConfig{
		apiPrefix: fragment.DefaultAPIPrefix,
		logger:    fragment.NopLogger{},
		validate:  true,
		scope:     fragment.DraftVersion,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithRoot sets the source directory file paths are classified against.
// Required by Compile; CompileFragments works without it.
func WithRoot(root string) Option {
	return func(cfg *compileConfig) error {
		cfg.root = root
		return nil
	}
}

// WithAPIPrefix sets the prefix carried by operation keys.
// Default: "/api"
func WithAPIPrefix(prefix string) Option {
	return func(cfg *compileConfig) error {
		if prefix != "" && !strings.HasPrefix(prefix, "/") {
			return &oaserrors.ConfigError{Option: "api-prefix", Value: prefix, Message: "must start with /"}
		}
		cfg.apiPrefix = prefix
		return nil
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l fragment.Logger) Option {
	return func(cfg *compileConfig) error {
		cfg.logger = fragment.OrNop(l)
		return nil
	}
}

// WithValidation enables or disables validation of the merged document.
// Default: true
func WithValidation(enabled bool) Option {
	return func(cfg *compileConfig) error {
		cfg.validate = enabled
		return nil
	}
}

// WithStrictValidation makes validation errors fail the compile. The merged
// document is still returned alongside the error.
// Default: false
func WithStrictValidation(enabled bool) Option {
	return func(cfg *compileConfig) error {
		cfg.strict = enabled
		return nil
	}
}

// WithConcurrency bounds the number of files loaded in parallel.
// Default: GOMAXPROCS
func WithConcurrency(n int) Option {
	return func(cfg *compileConfig) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "concurrency", Value: n, Message: "must not be negative"}
		}
		cfg.concurrency = n
		return nil
	}
}

// WithScope names the compiled document (usually a version token) in log
// output and validation errors.
// Default: "draft"
func WithScope(scope string) Option {
	return func(cfg *compileConfig) error {
		cfg.scope = scope
		return nil
	}
}

// WithValidatorOptions passes options through to the validator.
func WithValidatorOptions(opts ...validator.Option) Option {
	return func(cfg *compileConfig) error {
		cfg.validatorOpts = append(cfg.validatorOpts, opts...)
		return nil
	}
}
