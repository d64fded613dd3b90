// Package issues provides the issue type reported by document validation.
package issues

import (
	"fmt"
	"strings"

	"github.com/gocutover/open-api-specs/internal/severity"
)

// Issue represents a single problem found in a compiled document.
type Issue struct {
	// Path is the dotted path to the problematic node (e.g., "paths./pets.get.responses")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Field is the specific field name that has the issue
	Field string
	// Value is the problematic value (optional)
	Value any
	// SpecRef is the URL to the relevant section of the OpenAPI specification (optional)
	SpecRef string
}

// String returns a formatted string representation of the issue:
// "✗ paths./a.get.responses: operation must declare at least one response".
func (i Issue) String() string {
	result := fmt.Sprintf("%s %s: %s", i.Severity.Symbol(), i.Path, i.Message)
	if i.SpecRef != "" {
		result += fmt.Sprintf("\n    Spec: %s", i.SpecRef)
	}
	return result
}

// Short returns "path: message" without severity marker or spec link.
func (i Issue) Short() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// FormatPath joins path segments with dots, skipping empty segments.
func FormatPath(segments ...string) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// Messages returns Short() for every issue, in order.
func Messages(list []Issue) []string {
	out := make([]string, len(list))
	for i, issue := range list {
		out[i] = issue.Short()
	}
	return out
}

// AtLeast returns the issues whose severity is at least min, in order.
func AtLeast(list []Issue, min severity.Severity) []Issue {
	var out []Issue
	for _, issue := range list {
		if issue.Severity.AtLeast(min) {
			out = append(out, issue)
		}
	}
	return out
}
