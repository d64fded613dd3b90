package fragment

import (
	"strings"

	"github.com/gocutover/open-api-specs/oaserrors"
)

// DefaultAPIPrefix is the path prefix every operation key carries.
const DefaultAPIPrefix = "/api"

// Methods lists the HTTP methods an operation file may be named after.
var Methods = []string{"get", "post", "patch", "put", "delete"}

// IsMethod reports whether s (case-insensitive) names an operation method.
func IsMethod(s string) bool {
	s = strings.ToLower(s)
	for _, m := range Methods {
		if s == m {
			return true
		}
	}
	return false
}

// OperationKey identifies one documented operation. Keys are comparable and
// normalized: the method is lower case and the path is lower case, carries
// the API prefix exactly once, starts with "/" and has no trailing "/".
type OperationKey struct {
	Method string
	Path   string
}

// NewOperationKey builds a normalized key from a method and a path template.
// The prefix is added unless path already starts with it.
func NewOperationKey(method, path, prefix string) OperationKey {
	return OperationKey{
		Method: strings.ToLower(method),
		Path:   normalizePath(path, prefix),
	}
}

// String renders the key in its file-path form: "/api/widgets/get".
func (k OperationKey) String() string {
	return strings.TrimSuffix(k.Path, "/") + "/" + k.Method
}

// ParseOperationKey parses an operation descriptor into a key. Accepted forms,
// all case-insensitive and all equivalent for the same operation:
//
//	"GET /widgets"
//	"GET /api/widgets"
//	"/api/widgets/get"
//	"/widgets/get"
func ParseOperationKey(descriptor, prefix string) (OperationKey, error) {
	d := strings.TrimSpace(descriptor)
	if fields := strings.Fields(d); len(fields) == 2 {
		if !IsMethod(fields[0]) {
			return OperationKey{}, invalidDescriptor(descriptor, "unknown method "+fields[0])
		}
		return NewOperationKey(fields[0], fields[1], prefix), nil
	}
	if strings.ContainsAny(d, " \t") || d == "" {
		return OperationKey{}, invalidDescriptor(descriptor, `expected "METHOD /path" or "/path/method"`)
	}

	d = strings.TrimSuffix(d, "/")
	idx := strings.LastIndex(d, "/")
	if idx < 0 || !IsMethod(d[idx+1:]) {
		return OperationKey{}, invalidDescriptor(descriptor, "path does not end in an HTTP method")
	}
	return NewOperationKey(d[idx+1:], d[:idx], prefix), nil
}

func invalidDescriptor(descriptor, msg string) error {
	return &oaserrors.ConfigError{Option: "operation", Value: descriptor, Message: msg}
}

func normalizePath(path, prefix string) string {
	path = strings.ToLower(strings.TrimSpace(path))
	prefix = strings.ToLower(strings.TrimSuffix(prefix, "/"))
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if prefix != "" && path != prefix && !strings.HasPrefix(path, prefix+"/") {
		if path == "/" {
			path = prefix
		} else {
			path = prefix + path
		}
	}
	return path
}
