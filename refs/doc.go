// Package refs expands shorthand schema references in API documents.
//
// Authors write a component name where a schema is expected:
//
//	components:
//	  schemas:
//	    Widget:
//	      properties:
//	        owner: User
//
// and [Normalize] rewrites every such string into a JSON reference:
//
//	owner: {$ref: "#/components/schemas/User"}
//
// Whether a string is rewritten depends only on its structural path, never
// on the value. The rules, tried in order:
//
//	.../properties/<name>                              -> #/components/schemas/V
//	components/schemas/<name>[/items]                  -> #/components/schemas/V
//	paths/<p>/<m>/responses/<code>/schema              -> #/components/schemas/V
//	paths/<p>/<m>/requestBody/schema                   -> #/components/schemas/V
//	components/(requestBodies|responses)/<name>/schema -> #/components/<kind>/V/content/application~1json/schema
//	.../content/application/json/schema                -> #/components/<kind>/V/content/application~1json/schema
//
// Each rule also matches with a trailing oneOf, allOf, anyOf or not segment.
// Sequence elements share their parent's path. In the last rule <kind> is
// requestBodies when the nearest enclosing section is a request body and
// responses otherwise.
package refs
