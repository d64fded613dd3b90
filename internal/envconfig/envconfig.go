// Package envconfig reads OASPECS_* environment variables shared by the CLI
// and the MCP server. Invalid values log a warning and fall back to the
// default.
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gocutover/open-api-specs/compiler"
	"github.com/gocutover/open-api-specs/fragment"
	"github.com/gocutover/open-api-specs/versions"
)

// Environment variable names.
const (
	EnvRoot        = "OASPECS_ROOT"
	EnvAPIPrefix   = "OASPECS_API_PREFIX"
	EnvDraftOnly   = "OASPECS_DRAFT_ONLY"
	EnvFormat      = "OASPECS_FORMAT"
	EnvStrict      = "OASPECS_STRICT"
	EnvConcurrency = "OASPECS_CONCURRENCY"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the environment defaults. Command-line flags override them.
type Config struct {
	// Root is the fragment tree directory
	Root string
	// APIPrefix is prepended to every operation path
	APIPrefix string
	// DraftOnly makes version-range queries return only the draft
	DraftOnly bool
	// Format is the output format for written documents
	Format string
	// Strict makes validation issues fail a compile
	Strict bool
	// Concurrency bounds parallel file loading; 0 means GOMAXPROCS
	Concurrency int
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Root:        envString(EnvRoot, "."),
		APIPrefix:   envPrefix(EnvAPIPrefix, fragment.DefaultAPIPrefix),
		DraftOnly:   envBool(EnvDraftOnly, true),
		Format:      envFormat(EnvFormat, FormatJSON),
		Strict:      envBool(EnvStrict, false),
		Concurrency: envInt(EnvConcurrency, 0),
	}
}

// ValidFormat reports whether f names a supported output format.
func ValidFormat(f string) bool {
	return f == FormatJSON || f == FormatYAML
}

// IndexOptions returns the versions.Index options this configuration
// implies.
func (c *Config) IndexOptions(logger fragment.Logger) []versions.Option {
	return []versions.Option{
		versions.WithRoot(c.Root),
		versions.WithAPIPrefix(c.APIPrefix),
		versions.WithDraftOnly(c.DraftOnly),
		versions.WithLogger(logger),
		versions.WithCompilerOptions(
			compiler.WithStrictValidation(c.Strict),
			compiler.WithConcurrency(c.Concurrency),
		),
	}
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envPrefix(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if !strings.HasPrefix(v, "/") {
		slog.Warn("invalid prefix env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envFormat(key, fallback string) string {
	v := strings.ToLower(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if !ValidFormat(v) {
		slog.Warn("invalid format env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return v
}
