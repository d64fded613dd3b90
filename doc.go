// Package oaspecs builds OpenAPI 3.0 documents from a tree of small YAML
// fragments and answers questions about the API versions the tree defines.
//
// # Overview
//
// A fragment tree holds one file per operation, per component and per
// top-level document section:
//
//	widgets/get.yml            draft GET /api/widgets
//	widgets/get/20210101.yml   GET /api/widgets as of version 20210101
//	schemas/widget.yml         components/schemas entries
//	info/20210201.yml          info section from version 20210201 on
//	index.yml                  merged first
//
// The packages are layered:
//
//   - fragment: classify paths, load and parse YAML fragments, operation keys
//   - refs: expand shorthand schema names into $ref pointers
//   - compiler: wrap fragments at their document position, merge, validate
//   - validator: OpenAPI 3.0 structural and meta-schema checks
//   - versions: the version set, draft fallback, per-version documents
//   - template: one operation at one version, with defaults and example seeds
//
// # Quick Start
//
// Compile the draft document of a tree:
//
//	idx, err := versions.New(versions.WithRoot("specs"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := idx.DocumentFor(versions.Draft)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
//
// Resolve an operation template:
//
//	tpl, err := template.Find(idx, "GET /widgets", "20210101")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, ex := range tpl.Examples() {
//		fmt.Println(ex.Status, ex.Description)
//	}
//
// The oaspecs command wraps the same operations: compile, versions,
// template, validate and an MCP server over stdio.
package oaspecs
