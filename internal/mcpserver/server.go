package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	oaspecs "github.com/gocutover/open-api-specs"
)

const serverInstructions = `oaspecs MCP server: compiles OpenAPI 3.0 documents from a tree of YAML fragments, lists the API versions the tree defines and resolves operation templates.

Configuration: defaults come from OASPECS_* environment variables set in your MCP client config. Every tool also accepts root and api_prefix.

Key settings:
- OASPECS_ROOT (default: working directory): fragment tree to read
- OASPECS_API_PREFIX (default: /api): prefix carried by every operation path
- OASPECS_DRAFT_ONLY (default: true): restrict test version ranges to the draft

Caching: each tree is scanned once per session. Pass refresh=true after editing fragments.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oaspecs", Version: oaspecs.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compile",
		Description: "Compile the OpenAPI document for one version of a fragment tree (default: draft). Returns the merged file count and validation issues. Set document=true to include the full merged document; leave it off for large trees. Use offset/limit to paginate issues.",
	}, handleCompile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "versions",
		Description: "List the API versions a fragment tree defines, oldest first with draft last, plus the latest dated version. Set after/until to get a version range. test_range lists the versions a test with those bounds runs against, newest first (draft only when draft_only is set). Set operations=true to list every operation with the versions it defines.",
	}, handleVersions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "template",
		Description: "Resolve one operation at one version (falling back to its draft) and return it with defaults applied: operationId, consumes, security, parameters, request body and responses in OpenAPI 3 shape. Operation accepts \"GET /widgets\" or \"/api/widgets/get\". Set examples=true for the example seed list, or query to evaluate a JSONPath expression against the operation.",
	}, handleTemplate)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to defaultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
