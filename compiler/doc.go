// Package compiler merges YAML fragments into one OpenAPI document.
//
// Each fragment goes through the same steps before it is merged:
//
//  1. Decode (package fragment). Top-level keys starting with "_" are
//     dropped; they hold file-local anchors and scratch data.
//  2. Content shape. Entries of requestBodies and responses component
//     files that carry a bare schema or examples key have them moved under
//     content/application/json.
//  3. Path shape. Operation files are wrapped as paths/<template>/<method>
//     (an "id" key becomes "operationId"); component files are wrapped as
//     components/<kind>; anything else is merged as written.
//  4. Reference expansion (package refs).
//
// Fragments are merged in a fixed order, index files first and then by
// relative path. Mappings are unioned; any other value is replaced by the
// later fragment. The merged document is then checked by package validator.
// Validation issues are returned in Result.Issues and only fail the compile
// with [WithStrictValidation].
//
//	c, err := compiler.New(compiler.WithRoot("specs"))
//	if err != nil {
//		return err
//	}
//	result, err := c.Compile(ctx, paths)
//	if err != nil {
//		return err
//	}
//	if err := result.Err(); err != nil {
//		log.Printf("document has problems: %v", err)
//	}
package compiler
