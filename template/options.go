package template

import (
	"strings"

	"github.com/gocutover/open-api-specs/internal/maputil"
)

// DefaultConsumes is returned by Consumes when the document declares none.
var DefaultConsumes = []string{"application/json"}

// DefaultSecurity is the security requirement applied when an operation
// declares none.
func DefaultSecurity() []any {
	return []any{map[string]any{"bearerAuth": []any{}}}
}

// Option is a function that configures a Template
type Option func(*templateConfig) error

// templateConfig holds configuration for a Template
type templateConfig struct {
	legacyPrefixes  []string
	defaultSecurity []any
	defaultConsumes []string
}

// applyOptions applies option functions on top of the defaults
func applyOptions(opts ...Option) (*templateConfig, error) {
	cfg := &templateConfig{
		defaultSecurity: DefaultSecurity(),
		defaultConsumes: append([]string(nil), DefaultConsumes...),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLegacyPrefixes lists operation path prefixes (such as "/api/legacy")
// whose operations may omit operationId. For those, an identifier is
// derived from the method and path.
func WithLegacyPrefixes(prefixes ...string) Option {
	return func(cfg *templateConfig) error {
		for _, p := range prefixes {
			cfg.legacyPrefixes = append(cfg.legacyPrefixes, strings.ToLower(strings.TrimSuffix(p, "/")))
		}
		return nil
	}
}

// WithDefaultSecurity sets the security requirement used when the operation
// declares none.
// Default: [{"bearerAuth": []}]
func WithDefaultSecurity(security []any) Option {
	return func(cfg *templateConfig) error {
		cfg.defaultSecurity, _ = maputil.DeepCopy(security).([]any)
		return nil
	}
}

// WithDefaultConsumes sets the media types used when the operation declares
// none.
// Default: ["application/json"]
func WithDefaultConsumes(mediaTypes ...string) Option {
	return func(cfg *templateConfig) error {
		cfg.defaultConsumes = append([]string(nil), mediaTypes...)
		return nil
	}
}
