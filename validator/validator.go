package validator

import (
	"context"
	"fmt"
	"slices"

	"github.com/gocutover/open-api-specs/internal/issues"
	"github.com/gocutover/open-api-specs/internal/severity"
	"github.com/gocutover/open-api-specs/oaserrors"
)

// Severity indicates the severity level of a validation issue
type Severity = severity.Severity

const (
	// SeverityError indicates a violation that makes the document invalid
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a likely mistake that does not block publishing
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
)

const (
	// defaultErrorCapacity is the initial capacity for error slices
	defaultErrorCapacity = 10
	// defaultWarningCapacity is the initial capacity for warning slices
	defaultWarningCapacity = 10

	specBaseURL = "https://spec.openapis.org/oas/v3.0.3.html"
)

// MsgDeepObjectPolymorphic is reported by the structural deepObject rule for
// a parameter whose schema is a oneOf/anyOf of object schemas rather than a
// plain object. Clients serialize such parameters correctly, so the message
// is allow-listed and only surfaces when the allow-list is cleared.
const MsgDeepObjectPolymorphic = "deepObject parameter schema is a oneOf/anyOf composition, not type: object"

// KnownFalsePositives lists issue messages that are dropped from every
// result, whichever layer reported them. Matching is exact string equality.
var KnownFalsePositives = []string{
	MsgDeepObjectPolymorphic,
}

// ValidationError represents a single validation issue
type ValidationError = issues.Issue

// ValidationResult contains the results of validating a compiled document
type ValidationResult struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool
	// Version is the document's openapi field
	Version string
	// Errors contains all validation errors
	Errors []ValidationError
	// Warnings contains all validation warnings
	Warnings []ValidationError
	// ErrorCount is the total number of errors
	ErrorCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// Suppressed is the number of issues dropped by the allow-list
	Suppressed int
}

// Err returns nil for a valid result, otherwise an
// *oaserrors.ValidationError listing every error. scope names the
// validated document in the message.
func (r *ValidationResult) Err(scope string) error {
	if r == nil || r.Valid {
		return nil
	}
	return &oaserrors.ValidationError{Scope: scope, Violations: issues.Messages(r.Errors)}
}

// Validator checks compiled documents against OpenAPI 3.0
type Validator struct {
	// IncludeWarnings determines whether warnings are kept in the result
	IncludeWarnings bool
	// MetaSchema enables the kin-openapi document check
	MetaSchema bool
	// KnownFalsePositives are exact messages dropped from the result
	KnownFalsePositives []string
}

// New creates a Validator with the given options.
func New(opts ...Option) (*Validator, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}
	return &Validator{
		IncludeWarnings:     cfg.includeWarnings,
		MetaSchema:          cfg.metaSchema,
		KnownFalsePositives: cfg.knownFalsePositives,
	}, nil
}

// Validate checks doc with the default configuration.
func Validate(doc map[string]any) *ValidationResult {
	v, _ := New()
	return v.Validate(context.Background(), doc)
}

// Validate checks doc and returns every issue found. It never stops at the
// first issue and never modifies doc.
func (v *Validator) Validate(ctx context.Context, doc map[string]any) *ValidationResult {
	result := &ValidationResult{
		Errors:   make([]ValidationError, 0, defaultErrorCapacity),
		Warnings: make([]ValidationError, 0, defaultWarningCapacity),
	}
	result.Version, _ = doc["openapi"].(string)

	v.validateRoot(doc, result)
	v.validatePaths(doc, result)
	v.validateComponents(doc, result)
	v.validateOperationIDs(doc, result)
	v.validateRefs(doc, result)
	if v.MetaSchema {
		v.validateMetaSchema(ctx, doc, result)
	}

	v.applyAllowList(result)

	result.ErrorCount = len(result.Errors)
	result.WarningCount = len(result.Warnings)
	result.Valid = result.ErrorCount == 0

	if !v.IncludeWarnings {
		result.Warnings = nil
		result.WarningCount = 0
	}
	return result
}

func (v *Validator) applyAllowList(result *ValidationResult) {
	if len(v.KnownFalsePositives) == 0 {
		return
	}
	keep := func(list []ValidationError) []ValidationError {
		out := list[:0]
		for _, issue := range list {
			if slices.Contains(v.KnownFalsePositives, issue.Message) {
				result.Suppressed++
				continue
			}
			out = append(out, issue)
		}
		return out
	}
	result.Errors = keep(result.Errors)
	result.Warnings = keep(result.Warnings)
}

// addError appends a validation error.
func (v *Validator) addError(result *ValidationResult, path, message string, opts ...func(*ValidationError)) {
	err := ValidationError{
		Path:     path,
		Message:  message,
		Severity: SeverityError,
	}
	for _, opt := range opts {
		opt(&err)
	}
	result.Errors = append(result.Errors, err)
}

// addWarning appends a validation warning.
func (v *Validator) addWarning(result *ValidationResult, path, message string, opts ...func(*ValidationError)) {
	warn := ValidationError{
		Path:     path,
		Message:  message,
		Severity: SeverityWarning,
	}
	for _, opt := range opts {
		opt(&warn)
	}
	result.Warnings = append(result.Warnings, warn)
}

// withField sets the Field on a ValidationError.
func withField(field string) func(*ValidationError) {
	return func(e *ValidationError) { e.Field = field }
}

// withValue sets the Value on a ValidationError.
func withValue(value any) func(*ValidationError) {
	return func(e *ValidationError) { e.Value = value }
}

// withSpecRef sets the SpecRef on a ValidationError.
func withSpecRef(anchor string) func(*ValidationError) {
	return func(e *ValidationError) { e.SpecRef = specBaseURL + "#" + anchor }
}
