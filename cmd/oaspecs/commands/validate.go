package commands

import (
	"github.com/spf13/cobra"

	"github.com/gocutover/open-api-specs/internal/cliutil"
	"github.com/gocutover/open-api-specs/internal/issues"
	"github.com/gocutover/open-api-specs/internal/severity"
	"github.com/gocutover/open-api-specs/versions"
)

// validateFlags contains flags for the validate command
type validateFlags struct {
	version     string
	noWarnings  bool
	minSeverity string
	format      string
}

// validateReport is the structured form of a validation run.
type validateReport struct {
	Version      string   `json:"version"            yaml:"version"`
	Valid        bool     `json:"valid"              yaml:"valid"`
	Files        int      `json:"files"              yaml:"files"`
	ErrorCount   int      `json:"error_count"        yaml:"error_count"`
	WarningCount int      `json:"warning_count"      yaml:"warning_count"`
	Errors       []string `json:"errors,omitempty"   yaml:"errors,omitempty"`
	Warnings     []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newValidateCommand(g *globalOptions) *cobra.Command {
	flags := &validateFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Compile one version and report validation issues",
		Long: `Compile one version's document (draft by default), validate it against
OpenAPI 3.0 and print every issue. Exits non-zero when there are errors.`,
		Example: `  oaspecs validate
  oaspecs validate --version 20210101 --no-warnings
  oaspecs validate --min-severity warning
  oaspecs validate --format json | jq '.valid'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, g, flags)
		},
	}
	cmd.Flags().StringVar(&flags.version, "version", versions.Draft, "version token to validate")
	cmd.Flags().BoolVar(&flags.noWarnings, "no-warnings", false, "suppress warning messages (only show errors)")
	cmd.Flags().StringVar(&flags.minSeverity, "min-severity", "info", "lowest severity to report: error, warning or info")
	cmd.Flags().StringVarP(&flags.format, "format", "f", FormatText, "output format: text, json or yaml")
	return cmd
}

func runValidate(cmd *cobra.Command, g *globalOptions, flags *validateFlags) error {
	if err := ValidateOutputFormat(flags.format, true); err != nil {
		return err
	}
	minSeverity, err := severity.Parse(flags.minSeverity)
	if err != nil {
		return err
	}
	if flags.noWarnings {
		minSeverity = severity.SeverityError
	}
	// Issues are reported here, never turned into a compile error.
	g.env.Strict = false
	idx, err := g.index(cmd.Context())
	if err != nil {
		return err
	}
	result, err := idx.DocumentForContext(cmd.Context(), flags.version)
	if err != nil {
		return err
	}

	report := validateReport{Version: result.Scope, Valid: true, Files: len(result.Files)}
	var errs, warns []issues.Issue
	if v := result.Validation; v != nil {
		report.Valid = v.Valid
		report.ErrorCount = v.ErrorCount
		errs = v.Errors
		warns = issues.AtLeast(v.Warnings, minSeverity)
		report.WarningCount = len(warns)
	}
	report.Errors = issues.Messages(errs)
	report.Warnings = issues.Messages(warns)

	out := cmd.OutOrStdout()
	if flags.format != FormatText {
		if err := OutputStructured(out, report, flags.format); err != nil {
			return err
		}
	} else {
		cliutil.Writef(out, "%s\n\n", result.Summary())
		cliutil.WriteList(out, "Errors", errs)
		cliutil.WriteList(out, "Warnings", warns)
		if report.Valid {
			cliutil.Writef(out, "✓ Validation passed")
			if report.WarningCount > 0 {
				cliutil.Writef(out, " with %d warning(s)", report.WarningCount)
			}
			cliutil.Writef(out, "\n")
		} else {
			cliutil.Writef(out, "✗ Validation failed: %d error(s)\n", report.ErrorCount)
		}
	}

	if !report.Valid {
		return errFailed
	}
	return nil
}
