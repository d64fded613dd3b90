package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gocutover/open-api-specs/versions"
)

type compileInput struct {
	Tree     treeInput `json:"tree,omitempty"     jsonschema:"The fragment tree to compile"`
	Version  string    `json:"version,omitempty"  jsonschema:"Version token to compile (default: draft)"`
	Document bool      `json:"document,omitempty" jsonschema:"Include the full merged document in the output"`
	Offset   int       `json:"offset,omitempty"   jsonschema:"Skip the first N issues (for pagination)"`
	Limit    int       `json:"limit,omitempty"    jsonschema:"Maximum number of issues to return (default 100)"`
}

type issueOutput struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
}

type compileOutput struct {
	Version      string         `json:"version"`
	Valid        bool           `json:"valid"`
	FileCount    int            `json:"file_count"`
	ErrorCount   int            `json:"error_count"`
	WarningCount int            `json:"warning_count"`
	Suppressed   int            `json:"suppressed,omitempty"`
	Returned     int            `json:"returned"`
	Issues       []issueOutput  `json:"issues,omitempty"`
	Document     map[string]any `json:"document,omitempty"`
}

func handleCompile(ctx context.Context, _ *mcp.CallToolRequest, input compileInput) (*mcp.CallToolResult, compileOutput, error) {
	idx, err := input.Tree.index(ctx)
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}
	version := input.Version
	if version == "" {
		version = versions.Draft
	}

	result, err := idx.DocumentForContext(ctx, version)
	if result == nil {
		return errResult(err), compileOutput{}, nil
	}

	output := compileOutput{
		Version:   result.Scope,
		Valid:     true,
		FileCount: len(result.Files),
	}
	if v := result.Validation; v != nil {
		output.Valid = v.Valid
		output.ErrorCount = v.ErrorCount
		output.WarningCount = v.WarningCount
		output.Suppressed = v.Suppressed
	}
	output.Issues = makeSlice[issueOutput](len(result.Issues))
	for _, iss := range result.Issues {
		output.Issues = append(output.Issues, issueOutput{
			Severity: iss.Severity.String(),
			Path:     iss.Path,
			Message:  iss.Message,
			Field:    iss.Field,
		})
	}
	output.Issues = paginate(output.Issues, input.Offset, input.Limit)
	output.Returned = len(output.Issues)
	if input.Document {
		output.Document = result.Document
	}
	return nil, output, nil
}
