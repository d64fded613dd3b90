package validator

// Option is a function that configures a Validator
type Option func(*validateConfig) error

// validateConfig holds configuration for a validation run
type validateConfig struct {
	includeWarnings     bool
	metaSchema          bool
	knownFalsePositives []string
}

// applyOptions applies option functions on top of the defaults
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		includeWarnings:     true,
		metaSchema:          true,
		knownFalsePositives: append([]string(nil), KnownFalsePositives...),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithIncludeWarnings enables or disables warnings in the result
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.includeWarnings = enabled
		return nil
	}
}

// WithMetaSchema enables or disables the kin-openapi document check that
// runs after the structural checks.
// Default: true
func WithMetaSchema(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.metaSchema = enabled
		return nil
	}
}

// WithKnownFalsePositives adds exact issue messages to the allow-list.
// Entries are compared with ==; patterns are not supported.
func WithKnownFalsePositives(messages ...string) Option {
	return func(cfg *validateConfig) error {
		cfg.knownFalsePositives = append(cfg.knownFalsePositives, messages...)
		return nil
	}
}
