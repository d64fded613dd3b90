package pathutil

import "strings"

// Component reference prefixes.
const (
	RefPrefixSchemas       = "#/components/schemas/"
	RefPrefixParameters    = "#/components/parameters/"
	RefPrefixRequestBodies = "#/components/requestBodies/"
)

// JSONMediaType is the media type every shorthand content block is keyed by.
const JSONMediaType = "application/json"

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return RefPrefixSchemas + name
}

// ParameterRef builds "#/components/parameters/{name}".
func ParameterRef(name string) string {
	return RefPrefixParameters + name
}

// RequestBodyRef builds "#/components/requestBodies/{name}".
func RequestBodyRef(name string) string {
	return RefPrefixRequestBodies + name
}

// ContentSchemaRef builds a pointer to the JSON schema of a requestBodies or
// responses component:
// "#/components/{kind}/{name}/content/application~1json/schema".
// The media type is escaped because it contains a slash.
func ContentSchemaRef(kind, name string) string {
	var b strings.Builder
	b.Grow(len("#/components///content//schema") + len(kind) + len(name) + len(JSONMediaType) + 2)
	b.WriteString("#/components/")
	b.WriteString(kind)
	b.WriteByte('/')
	b.WriteString(name)
	b.WriteString("/content/")
	b.WriteString(EscapePointerToken(JSONMediaType))
	b.WriteString("/schema")
	return b.String()
}
