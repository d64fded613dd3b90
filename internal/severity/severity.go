// Package severity provides the severity levels attached to validation
// issues.
//
// Levels are ordered from least to most severe: Info < Warning < Error.
// Only Error issues make a document invalid.
package severity

import (
	"fmt"
	"strings"
)

// Severity indicates how serious a validation issue is.
type Severity int

const (
	// SeverityError indicates a violation that makes the document invalid.
	SeverityError Severity = iota

	// SeverityWarning indicates a likely mistake that does not block
	// publishing the document.
	SeverityWarning

	// SeverityInfo indicates an informational notice.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Symbol returns the one-character marker used in text reports.
func (s Severity) Symbol() string {
	switch s {
	case SeverityError:
		return "✗"
	case SeverityWarning:
		return "⚠"
	case SeverityInfo:
		return "ℹ"
	default:
		return "?"
	}
}

// Rank orders severities from least (0) to most severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	default:
		return -1
	}
}

// AtLeast reports whether s is at least as severe as min.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

// Parse converts a level name ("error", "warning", "info") to a Severity.
func Parse(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return 0, fmt.Errorf("severity: unknown level %q", name)
	}
}
