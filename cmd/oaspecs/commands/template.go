package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gocutover/open-api-specs/internal/cliutil"
	"github.com/gocutover/open-api-specs/template"
	"github.com/gocutover/open-api-specs/versions"
)

// templateFlags contains flags for the template command
type templateFlags struct {
	version string
	query   string
	legacy  []string
	format  string
}

// exampleReport is one example seed in structured output.
type exampleReport struct {
	Status         string   `json:"status"                    yaml:"status"`
	Name           string   `json:"name,omitempty"            yaml:"name,omitempty"`
	Master         bool     `json:"master"                    yaml:"master"`
	Description    string   `json:"description"               yaml:"description"`
	Value          any      `json:"value,omitempty"           yaml:"value,omitempty"`
	PostConditions []string `json:"post_conditions,omitempty" yaml:"post_conditions,omitempty"`
}

// templateReport is the structured form of a resolved template.
type templateReport struct {
	Operation   string          `json:"operation"              yaml:"operation"`
	APIVersion  string          `json:"api_version"            yaml:"api_version"`
	OperationID string          `json:"operation_id"           yaml:"operation_id"`
	Consumes    []string        `json:"consumes"               yaml:"consumes"`
	Security    []any           `json:"security"               yaml:"security"`
	Parameters  []any           `json:"parameters,omitempty"   yaml:"parameters,omitempty"`
	RequestBody map[string]any  `json:"request_body,omitempty" yaml:"request_body,omitempty"`
	Responses   map[string]any  `json:"responses,omitempty"    yaml:"responses,omitempty"`
	Examples    []exampleReport `json:"examples,omitempty"     yaml:"examples,omitempty"`
}

func newTemplateCommand(g *globalOptions) *cobra.Command {
	flags := &templateFlags{}
	cmd := &cobra.Command{
		Use:   "template <operation>",
		Short: "Resolve one operation at one version",
		Long: `Resolve an operation at a version, falling back to its draft, and print it
with defaults applied plus its example seeds.

The operation may be written "GET /widgets", "GET /api/widgets" or
"/api/widgets/get". With --query, only the JSONPath result is printed.`,
		Example: `  oaspecs template "GET /widgets"
  oaspecs template /api/widgets/get --version 20210101 --format yaml
  oaspecs template "GET /widgets" --query '$.parameters[*].name'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplate(cmd, g, flags, args[0])
		},
	}
	cmd.Flags().StringVar(&flags.version, "version", versions.Draft, "version token")
	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "JSONPath expression evaluated against the operation")
	cmd.Flags().StringSliceVar(&flags.legacy, "legacy-prefix", nil, "path prefixes whose operations may omit operationId")
	cmd.Flags().StringVarP(&flags.format, "format", "f", FormatText, "output format: text, json or yaml")
	return cmd
}

func runTemplate(cmd *cobra.Command, g *globalOptions, flags *templateFlags, descriptor string) error {
	if err := ValidateOutputFormat(flags.format, true); err != nil {
		return err
	}
	idx, err := g.index(cmd.Context())
	if err != nil {
		return err
	}
	tpl, err := template.Find(idx, descriptor, flags.version, template.WithLegacyPrefixes(flags.legacy...))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.query != "" {
		result, err := tpl.Query(flags.query)
		if err != nil {
			return err
		}
		format := flags.format
		if format == FormatText {
			format = FormatJSON
		}
		return OutputStructured(out, result, format)
	}

	report := newTemplateReport(tpl)
	if flags.format != FormatText {
		return OutputStructured(out, report, flags.format)
	}

	cliutil.Writef(out, "Operation: %s\n", report.Operation)
	cliutil.Writef(out, "Version: %s\n", report.APIVersion)
	cliutil.Writef(out, "Operation ID: %s\n", report.OperationID)
	cliutil.Writef(out, "Consumes: %s\n", strings.Join(report.Consumes, ", "))
	cliutil.Writef(out, "Parameters: %d\n", len(report.Parameters))
	cliutil.Writef(out, "Request body: %t\n", report.RequestBody != nil)
	cliutil.Writef(out, "Responses: %s\n", strings.Join(tpl.StatusCodes(), ", "))
	cliutil.Writef(out, "\nExamples (%d):\n", len(report.Examples))
	for _, ex := range report.Examples {
		kind := "example"
		if ex.Master {
			kind = "master"
		}
		cliutil.Writef(out, "  %s %-7s %s", ex.Status, kind, ex.Description)
		if len(ex.PostConditions) > 0 {
			cliutil.Writef(out, " [%s]", strings.Join(ex.PostConditions, "; "))
		}
		cliutil.Writef(out, "\n")
	}
	return nil
}

func newTemplateReport(tpl *template.Template) templateReport {
	tc := tpl.Context()
	report := templateReport{
		Operation:   tc.Operation.String(),
		APIVersion:  tc.APIVersion,
		OperationID: tpl.OperationID(),
		Consumes:    tpl.Consumes(),
		Security:    tpl.Security(),
		Parameters:  tpl.Parameters(),
		RequestBody: tpl.RequestBodyJSON(),
		Responses:   tpl.Responses(),
	}
	for _, ex := range tpl.Examples() {
		report.Examples = append(report.Examples, exampleReport{
			Status:         ex.Status,
			Name:           ex.Name,
			Master:         ex.Master,
			Description:    ex.Description,
			Value:          ex.Value,
			PostConditions: ex.PostConditions,
		})
	}
	return report
}
