package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gocutover/open-api-specs/oaserrors"
	"github.com/gocutover/open-api-specs/versions"
)

type versionsInput struct {
	Tree       treeInput `json:"tree,omitempty"       jsonschema:"The fragment tree to inspect"`
	After      string    `json:"after,omitempty"      jsonschema:"Range start, exclusive"`
	Until      string    `json:"until,omitempty"      jsonschema:"Range end, inclusive (default: latest dated version)"`
	Operations bool      `json:"operations,omitempty" jsonschema:"List every operation with its defined versions"`
	Offset     int       `json:"offset,omitempty"     jsonschema:"Skip the first N operations (for pagination)"`
	Limit      int       `json:"limit,omitempty"      jsonschema:"Maximum number of operations to return (default 100)"`
}

type operationSummary struct {
	Operation string   `json:"operation"`
	Method    string   `json:"method"`
	Path      string   `json:"path"`
	Versions  []string `json:"versions"`
}

type versionsOutput struct {
	Versions       []string           `json:"versions"`
	Latest         string             `json:"latest,omitempty"`
	Range          []string           `json:"range,omitempty"`
	TestRange      []string           `json:"test_range"`
	OperationCount int                `json:"operation_count"`
	Operations     []operationSummary `json:"operations,omitempty"`
}

func handleVersions(ctx context.Context, _ *mcp.CallToolRequest, input versionsInput) (*mcp.CallToolResult, versionsOutput, error) {
	idx, err := input.Tree.index(ctx)
	if err != nil {
		return errResult(err), versionsOutput{}, nil
	}

	vs, err := idx.Versions()
	if err != nil {
		return errResult(err), versionsOutput{}, nil
	}
	output := versionsOutput{Versions: vs}

	latest, err := idx.Latest()
	switch {
	case err == nil:
		output.Latest = latest
	case !errors.Is(err, oaserrors.ErrEmptyVersionSet):
		return errResult(err), versionsOutput{}, nil
	}

	if input.After != "" || input.Until != "" {
		output.Range, err = idx.Range(input.After, input.Until)
		if err != nil {
			return errResult(err), versionsOutput{}, nil
		}
	}

	output.TestRange, err = idx.FindRange(versions.Metadata{IncludeAfter: input.After, IncludeUntil: input.Until})
	if err != nil {
		return errResult(err), versionsOutput{}, nil
	}

	keys, err := idx.Operations()
	if err != nil {
		return errResult(err), versionsOutput{}, nil
	}
	output.OperationCount = len(keys)
	if !input.Operations {
		return nil, output, nil
	}

	page := paginate(keys, input.Offset, input.Limit)
	output.Operations = makeSlice[operationSummary](len(page))
	for _, key := range page {
		defined, err := idx.VersionsOf(key)
		if err != nil {
			return errResult(err), versionsOutput{}, nil
		}
		output.Operations = append(output.Operations, operationSummary{
			Operation: key.String(),
			Method:    key.Method,
			Path:      key.Path,
			Versions:  defined,
		})
	}
	return nil, output, nil
}
