// Package fragment discovers, classifies and decodes the YAML source files
// that make up an API description.
//
// A source tree is a directory of small YAML files. Where a file sits decides
// what it contributes:
//
//	widgets/get.yml                  draft operation GET /api/widgets
//	widgets/get/20210101.yml         GET /api/widgets as of version 20210101
//	widgets/schemas/widget.yml       components/schemas entries
//	requests/widget.yml              components/requestBodies entries
//	info.yml, servers/index.yml      static top-level document fragments
//
// [Classify] maps a path to a [Classification] and never fails. [Loader]
// reads files into [Fragment] values, rejecting malformed $ref literals and
// malformed YAML with the typed errors from the oaserrors package.
//
// Operations are identified by [OperationKey], which normalizes the several
// ways callers spell an operation ("GET /widgets", "/api/widgets/get") to one
// comparable value.
package fragment
