// Package naming provides shared case conversion utilities.
//
// The template package uses these to derive operation identifiers for
// legacy operations that predate mandatory operationIds, and to build
// readable default descriptions for generated examples.
package naming
