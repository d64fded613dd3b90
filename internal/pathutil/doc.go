// Package pathutil provides path and reference utilities shared by the
// reference normalizer, the validator, and the CLI writer.
//
// The primary type is [PathBuilder], which uses push/pop semantics to build
// structural paths incrementally. Visitors push a segment when descending
// into a mapping and pop it on the way back out, and only materialize the
// path when it is needed:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("properties")
//	path.Push(propName)
//	// ... match against path.Segments() or recurse ...
//	path.Pop()
//	path.Pop()
//
// # Reference Builders
//
// Component references are built by simple concatenation:
//
//	ref := pathutil.SchemaRef("Widget")                     // "#/components/schemas/Widget"
//	ref := pathutil.ContentSchemaRef("responses", "Widget") // "#/components/responses/Widget/content/application~1json/schema"
//
// [EscapePointerToken], [SplitLocalRef] and [LookupPointer] implement the
// RFC 6901 subset needed to check that local references resolve.
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] and [SanitizeOutputDir] clean output locations and
// reject symlinks before the CLI writes compiled documents.
package pathutil
