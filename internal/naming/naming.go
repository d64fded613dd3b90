// Package naming provides shared string case conversion utilities.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash) trigger capitalization of the next letter.
// Example: "user_profile" -> "UserProfile"
// Example: "api-client" -> "ApiClient"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if r == '_' || r == '-' || r == '.' || r == '/' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Like PascalCase but with the first letter lowercase.
// Example: "user_profile" -> "userProfile"
// Example: "UserProfile" -> "userProfile"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// OperationName derives a camelCase identifier from an HTTP method and a
// path template. Path parameters become "By<Name>".
// Example: ("get", "/api/legacy/widgets/{id}") -> "getApiLegacyWidgetsById"
func OperationName(method, pathTemplate string) string {
	parts := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(pathTemplate, "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			seg = "by_" + strings.Trim(seg, "{}")
		}
		parts = append(parts, seg)
	}
	return ToCamelCase(strings.Join(parts, "_"))
}

// newTitleCaser returns a fresh caser; a cases.Caser keeps state and must
// not be shared between goroutines.
func newTitleCaser() cases.Caser {
	return cases.Title(language.English)
}

// Humanize turns an identifier or path fragment into title-cased words.
// Separators become spaces and path parameters are dropped.
// Example: "list_widget-parts" -> "List Widget Parts"
func Humanize(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == '/' || unicode.IsSpace(r)
	})
	words := fields[:0]
	for _, f := range fields {
		if strings.HasPrefix(f, "{") {
			continue
		}
		words = append(words, f)
	}
	return newTitleCaser().String(strings.Join(words, " "))
}
