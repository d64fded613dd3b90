package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a YAML file could not be parsed into a document.
	ErrParse = errors.New("parse error")

	// ErrReferenceSyntax indicates a malformed $ref literal in a source file.
	ErrReferenceSyntax = errors.New("reference syntax error")

	// ErrValidation indicates the merged document violates the OpenAPI schema.
	ErrValidation = errors.New("validation error")

	// ErrOperationNotFound indicates no fragment exists for an operation.
	ErrOperationNotFound = errors.New("operation not found")

	// ErrVersionNotFound indicates an operation exists but has neither the
	// requested version nor a draft.
	ErrVersionNotFound = errors.New("version not found")

	// ErrMissingOperationID indicates a resolved template has no identifier.
	ErrMissingOperationID = errors.New("missing operationId")

	// ErrEmptyVersionSet indicates no dated version has ever been defined.
	ErrEmptyVersionSet = errors.New("empty version set")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse one YAML fragment.
// This includes YAML syntax errors and documents whose root is not a mapping.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Message describes the parsing failure
	Message string
	// Source is the raw input that was being parsed, kept for debugging
	Source []byte
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// NumberedSource returns Source with a right-aligned line number in front
// of every line. Returns an empty string when no source was captured.
func (e *ParseError) NumberedSource() string {
	if len(e.Source) == 0 {
		return ""
	}
	lines := strings.Split(strings.TrimRight(string(e.Source), "\n"), "\n")
	width := len(fmt.Sprint(len(lines)))
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%*d | %s\n", width, i+1, line)
	}
	return b.String()
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceSyntaxError represents a $ref literal that would not survive YAML
// parsing intact, such as an unquoted "#/components/..." pointer (which YAML
// reads as a comment) or a missing space after the colon.
type ReferenceSyntaxError struct {
	// Path is the file containing the reference
	Path string
	// Line is the 1-based line number of the reference
	Line int
	// Text is the offending line, trimmed
	Text string
}

// Error returns a human-readable error message.
func (e *ReferenceSyntaxError) Error() string {
	msg := "reference syntax error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Text != "" {
		msg += fmt.Sprintf(": %q", e.Text)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ReferenceSyntaxError) Is(target error) bool {
	return target == ErrReferenceSyntax || target == ErrParse
}

// ValidationError represents one or more OpenAPI schema violations found in
// a merged document. Violations holds the full list, never just the first.
type ValidationError struct {
	// Scope names the document that was validated (e.g. a version token)
	Scope string
	// Violations contains one formatted message per schema violation
	Violations []string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Scope != "" {
		msg += " in " + e.Scope
	}
	switch len(e.Violations) {
	case 0:
	case 1:
		msg += ": " + e.Violations[0]
	default:
		msg += fmt.Sprintf(": %d violations:\n  %s", len(e.Violations), strings.Join(e.Violations, "\n  "))
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// OperationNotFoundError is returned when no fragment exists for an
// operation key, or when the operation has neither the requested version
// nor a draft. Known lists every operation key in the index to aid debugging.
type OperationNotFoundError struct {
	// Key is the normalized operation key that was searched
	Key string
	// Version is the requested version token
	Version string
	// Known lists every operation key present in the index
	Known []string
	// VersionMissing is true when the operation exists but no usable version does
	VersionMissing bool
}

// Error returns a human-readable error message.
func (e *OperationNotFoundError) Error() string {
	var msg string
	if e.VersionMissing {
		msg = fmt.Sprintf("version not found: %s has neither version %q nor a draft", e.Key, e.Version)
	} else {
		msg = fmt.Sprintf("operation not found: %s (version %q)", e.Key, e.Version)
	}
	if len(e.Known) > 0 {
		msg += "; known operations: " + strings.Join(e.Known, ", ")
	}
	return msg
}

// Is reports whether target matches this error type.
// Matches ErrOperationNotFound, and also ErrVersionNotFound when
// VersionMissing is set.
func (e *OperationNotFoundError) Is(target error) bool {
	if target == ErrOperationNotFound {
		return true
	}
	return target == ErrVersionNotFound && e.VersionMissing
}

// MissingOperationIDError is returned when a template has no operationId and
// its path is not under a legacy prefix that allows one to be derived.
type MissingOperationIDError struct {
	// Key is the operation key of the template
	Key string
	// Version is the resolved version token
	Version string
}

// Error returns a human-readable error message.
func (e *MissingOperationIDError) Error() string {
	msg := "missing operationId"
	if e.Key != "" {
		msg += " for " + e.Key
	}
	if e.Version != "" {
		msg += fmt.Sprintf(" (version %q)", e.Version)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *MissingOperationIDError) Is(target error) bool {
	return target == ErrMissingOperationID
}

// EmptyVersionSetError is returned by Latest when only the draft version
// exists.
type EmptyVersionSetError struct {
	// Root is the directory that was indexed
	Root string
}

// Error returns a human-readable error message.
func (e *EmptyVersionSetError) Error() string {
	msg := "empty version set: no dated version defined"
	if e.Root != "" {
		msg += " under " + e.Root
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *EmptyVersionSetError) Is(target error) bool {
	return target == ErrEmptyVersionSet
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and malformed
// operation descriptors.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
