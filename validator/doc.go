// Package validator checks compiled API documents against OpenAPI 3.0.
//
// Validation runs in two layers over the generic document produced by the
// compiler:
//
//   - Structural checks written for this module: required root fields,
//     path and operation shape, response descriptions, bare schema shorthand
//     left unexpanded, parameter location rules, component names, duplicate
//     operationIds and unresolved local references.
//   - A document check by kin-openapi, which covers schema-level rules the
//     structural layer does not. Every component, operation and top-level
//     section is validated on its own and each failure is reported at that
//     unit's path (e.g. "components.schemas.Widget"). Loader failures are
//     reported at path "document".
//
// Issues are collected, never fail-fast. Each carries a dotted path and,
// where one applies, a link to the relevant section of the OpenAPI 3.0.3
// specification.
//
// # Known false positives
//
// [KnownFalsePositives] lists exact issue messages that are dropped from
// every result and counted in ValidationResult.Suppressed, matched with
// string equality. The list applies to issues from both layers. Its one
// built-in entry, [MsgDeepObjectPolymorphic], silences a rule of the
// structural layer: deepObject parameters must have an object schema, and a
// oneOf of object schemas is the accepted exception. kin-openapi does not
// check deepObject schemas at all.
//
// # Example
//
//	v, err := validator.New(validator.WithIncludeWarnings(false))
//	if err != nil {
//		return err
//	}
//	result := v.Validate(ctx, doc)
//	if err := result.Err("draft"); err != nil {
//		return err // *oaserrors.ValidationError listing every violation
//	}
package validator
