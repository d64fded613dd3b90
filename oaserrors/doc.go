// Package oaserrors provides structured error types for open-api-specs.
//
// Import path: github.com/gocutover/open-api-specs/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to tell structural failures (which abort a whole
// compilation) apart from per-operation resolution failures (which only
// abort the one operation that requested them).
//
// # Error Types
//
//   - [ParseError]: malformed YAML or a fragment whose root is not a mapping
//   - [ReferenceSyntaxError]: a $ref literal that YAML would silently mangle
//   - [ValidationError]: the merged document violates the OpenAPI 3.0 schema
//   - [OperationNotFoundError]: no fragment for an operation or version
//   - [MissingOperationIDError]: a resolved template has no identifier
//   - [EmptyVersionSetError]: Latest was asked for with only a draft defined
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError] and any [ReferenceSyntaxError]
//   - [ErrReferenceSyntax]: Matches any [ReferenceSyntaxError]
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrOperationNotFound]: Matches any [OperationNotFoundError]
//   - [ErrVersionNotFound]: Matches [OperationNotFoundError] with VersionMissing=true
//   - [ErrMissingOperationID]: Matches any [MissingOperationIDError]
//   - [ErrEmptyVersionSet]: Matches any [EmptyVersionSetError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage
//
//	tpl, err := template.Find(idx, "GET /widgets", "20210101")
//	if errors.Is(err, oaserrors.ErrOperationNotFound) {
//	    var nf *oaserrors.OperationNotFoundError
//	    if errors.As(err, &nf) {
//	        fmt.Println("known operations:", nf.Known)
//	    }
//	}
package oaserrors
