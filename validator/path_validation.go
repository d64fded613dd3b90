package validator

import (
	"fmt"
	"strings"

	"github.com/gocutover/open-api-specs/internal/pathutil"
)

// validatePathTemplate returns an error for a malformed path template
// (unbalanced or nested braces, empty or duplicate parameter names).
func validatePathTemplate(pathPattern string) error {
	if strings.Contains(pathPattern, "{}") {
		return fmt.Errorf("empty parameter name in path template")
	}
	if strings.Contains(pathPattern, "//") {
		return fmt.Errorf("path contains consecutive slashes")
	}
	if strings.ContainsAny(pathPattern, "#?") {
		return fmt.Errorf("path contains reserved character '#' or '?'")
	}

	depth := 0
	for i, ch := range pathPattern {
		switch ch {
		case '{':
			depth++
			if depth > 1 {
				return fmt.Errorf("nested braces are not allowed at position %d", i)
			}
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("unexpected closing brace at position %d", i)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("unclosed brace in path template")
	}

	seen := make(map[string]bool)
	for _, name := range pathutil.PathParams(pathPattern) {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("empty parameter name in path template")
		}
		if seen[name] {
			return fmt.Errorf("duplicate parameter name '%s' in path template", name)
		}
		seen[name] = true
	}
	return nil
}
