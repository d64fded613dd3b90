package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gocutover/open-api-specs/template"
	"github.com/gocutover/open-api-specs/versions"
)

type templateInput struct {
	Tree      treeInput `json:"tree,omitempty"      jsonschema:"The fragment tree to read"`
	Operation string    `json:"operation"           jsonschema:"Operation descriptor, e.g. \"GET /widgets\" or \"/api/widgets/get\""`
	Version   string    `json:"version,omitempty"   jsonschema:"Version token (default: draft); falls back to the operation's draft"`
	Examples  bool      `json:"examples,omitempty"  jsonschema:"Include the example seed list"`
	Query     string    `json:"query,omitempty"     jsonschema:"JSONPath expression evaluated against the operation document"`
	Legacy    []string  `json:"legacy,omitempty"    jsonschema:"Path prefixes whose operations may omit operationId"`
}

type exampleOutput struct {
	Status         string   `json:"status"`
	Name           string   `json:"name,omitempty"`
	Master         bool     `json:"master"`
	Description    string   `json:"description"`
	Value          any      `json:"value,omitempty"`
	PostConditions []string `json:"post_conditions,omitempty"`
}

type templateOutput struct {
	Operation   string          `json:"operation"`
	APIVersion  string          `json:"api_version"`
	OperationID string          `json:"operation_id"`
	Method      string          `json:"method"`
	Path        string          `json:"path"`
	Consumes    []string        `json:"consumes"`
	Security    []any           `json:"security"`
	Parameters  []any           `json:"parameters,omitempty"`
	RequestBody map[string]any  `json:"request_body,omitempty"`
	Responses   map[string]any  `json:"responses,omitempty"`
	Examples    []exampleOutput `json:"examples,omitempty"`
	QueryResult []any           `json:"query_result,omitempty"`
}

func handleTemplate(ctx context.Context, _ *mcp.CallToolRequest, input templateInput) (*mcp.CallToolResult, templateOutput, error) {
	if input.Operation == "" {
		return errResult(fmt.Errorf("operation is required")), templateOutput{}, nil
	}
	idx, err := input.Tree.index(ctx)
	if err != nil {
		return errResult(err), templateOutput{}, nil
	}
	version := input.Version
	if version == "" {
		version = versions.Draft
	}

	tpl, err := template.Find(idx, input.Operation, version, template.WithLegacyPrefixes(input.Legacy...))
	if err != nil {
		return errResult(err), templateOutput{}, nil
	}

	tc := tpl.Context()
	output := templateOutput{
		Operation:   tc.Operation.String(),
		APIVersion:  tc.APIVersion,
		OperationID: tpl.OperationID(),
		Method:      tc.Method,
		Path:        tc.Path,
		Consumes:    tpl.Consumes(),
		Security:    tpl.Security(),
		Parameters:  tpl.Parameters(),
		RequestBody: tpl.RequestBodyJSON(),
		Responses:   tpl.Responses(),
	}
	if len(output.Parameters) == 0 {
		output.Parameters = nil
	}

	if input.Examples {
		seeds := tpl.Examples()
		output.Examples = makeSlice[exampleOutput](len(seeds))
		for _, ex := range seeds {
			output.Examples = append(output.Examples, exampleOutput{
				Status:         ex.Status,
				Name:           ex.Name,
				Master:         ex.Master,
				Description:    ex.Description,
				Value:          ex.Value,
				PostConditions: ex.PostConditions,
			})
		}
	}

	if input.Query != "" {
		output.QueryResult, err = tpl.Query(input.Query)
		if err != nil {
			return errResult(err), templateOutput{}, nil
		}
	}
	return nil, output, nil
}
