package template

import (
	"github.com/gocutover/open-api-specs/internal/maputil"
	"github.com/gocutover/open-api-specs/internal/naming"
)

// ConditionBodyHasData is the post-condition added to master examples of
// 200 responses: the response body carries application data.
const ConditionBodyHasData = "response body contains data"

// Example is one test case seed. Each response yields one master example,
// which always runs, plus one documented example per entry of the
// response's examples map.
type Example struct {
	// Operation and APIVersion identify what the example exercises
	Operation  string
	APIVersion string
	// OperationID is the template's operation identifier
	OperationID string
	// Status is the response code the example expects
	Status string
	// Name is the examples-map key, empty for the master example
	Name string
	// Master is true for the mandatory validation example
	Master bool
	// Description is a human-readable title
	Description string
	// Value is the documented example payload, nil for the master example
	Value any
	// PostConditions lists checks to run on the response
	PostConditions []string
	// Response is the expected response definition
	Response map[string]any
}

// Examples returns the seed list for this operation, ordered by status code,
// each master example before its documented examples.
func (t *Template) Examples() []Example {
	responses := t.Responses()
	var out []Example
	for _, status := range maputil.SortedKeys(responses) {
		resp, _ := responses[status].(map[string]any)
		master := t.masterExample(status, resp)
		out = append(out, master)

		documented, _ := resp["examples"].(map[string]any)
		for _, name := range maputil.SortedKeys(documented) {
			ex := master
			ex.Master = false
			ex.Name = name
			ex.Value = maputil.DeepCopy(documented[name])
			ex.Description = exampleDescription(name, documented[name])
			ex.PostConditions = append([]string(nil), master.PostConditions...)
			out = append(out, ex)
		}
	}
	return out
}

func (t *Template) masterExample(status string, resp map[string]any) Example {
	desc, _ := resp["description"].(string)
	if desc == "" {
		desc = naming.Humanize(t.ctx.Method + " " + t.ctx.Path + " " + status)
	}
	ex := Example{
		Operation:   t.ctx.Operation.String(),
		APIVersion:  t.ctx.APIVersion,
		OperationID: t.operationID,
		Status:      status,
		Master:      true,
		Description: desc,
		Response:    resp,
	}
	if dataCheck(status, resp) {
		ex.PostConditions = []string{ConditionBodyHasData}
	}
	return ex
}

// dataCheck reports whether a master example asserts the body carries data:
// only for 200 responses, and not when the response sets data_check: false.
func dataCheck(status string, resp map[string]any) bool {
	if status != "200" {
		return false
	}
	if v, ok := resp["data_check"].(bool); ok && !v {
		return false
	}
	return true
}

func exampleDescription(name string, v any) string {
	if m, ok := v.(map[string]any); ok {
		for _, key := range []string{"summary", "description"} {
			if s, ok := m[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return naming.Humanize(name)
}
