// Package template is the read-only view test tooling uses to turn one
// operation at one version into test cases.
//
// A Template wraps the operation document returned by the version index and
// fills defaults on access:
//
//	t, err := template.Find(idx, "GET /widgets", "20210101")
//	if err != nil {
//		return err
//	}
//	t.OperationID()     // "listWidgets"
//	t.Consumes()        // ["application/json"] unless declared
//	t.Security()        // [{"bearerAuth": []}] unless declared
//	t.Parameters()      // string entries become parameter component refs
//	t.RequestBodyJSON() // nil, or the body in OpenAPI 3 content shape
//	t.Responses()       // keyed by status, legacy lists converted
//	for _, ex := range t.Examples() {
//		// one master example per response, then its documented examples
//	}
//
// Attributes can also be looked up by name with [Template.Get], which
// consults a fixed resolver registry, then a "<foo>Id" rule, then the
// document, and queried with JSONPath through [Template.Query].
package template
