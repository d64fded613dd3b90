package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gocutover/open-api-specs/internal/cliutil"
	"github.com/gocutover/open-api-specs/oaserrors"
	"github.com/gocutover/open-api-specs/versions"
)

// versionsFlags contains flags for the versions command
type versionsFlags struct {
	after      string
	until      string
	operations bool
	format     string
}

// versionsReport is the structured form of the versions command output.
type versionsReport struct {
	Versions   []string            `json:"versions"             yaml:"versions"`
	Latest     string              `json:"latest,omitempty"     yaml:"latest,omitempty"`
	TestRange  []string            `json:"test_range"           yaml:"test_range"`
	Operations map[string][]string `json:"operations,omitempty" yaml:"operations,omitempty"`
}

func newVersionsCommand(g *globalOptions) *cobra.Command {
	flags := &versionsFlags{}
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List the API versions the fragment tree defines",
		Long: `List every version token found on a versioned operation file, oldest first,
with draft last, and the newest dated version.

The test range is what a test declaring --after/--until runs against, newest
first. It is only the draft when OASPECS_DRAFT_ONLY is set (the default).`,
		Example: `  oaspecs versions
  oaspecs versions --after 20210101 --until 20210301
  oaspecs versions --operations --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersions(cmd, g, flags)
		},
	}
	cmd.Flags().StringVar(&flags.after, "after", "", "test range start, exclusive")
	cmd.Flags().StringVar(&flags.until, "until", "", "test range end, inclusive")
	cmd.Flags().BoolVar(&flags.operations, "operations", false, "list every operation with its versions")
	cmd.Flags().BoolVar(&g.env.DraftOnly, "draft-only", g.env.DraftOnly, "restrict the test range to the draft")
	cmd.Flags().StringVarP(&flags.format, "format", "f", FormatText, "output format: text, json or yaml")
	return cmd
}

func runVersions(cmd *cobra.Command, g *globalOptions, flags *versionsFlags) error {
	if err := ValidateOutputFormat(flags.format, true); err != nil {
		return err
	}
	idx, err := g.index(cmd.Context())
	if err != nil {
		return err
	}

	report := versionsReport{}
	if report.Versions, err = idx.Versions(); err != nil {
		return err
	}
	report.Latest, err = idx.Latest()
	if err != nil && !errors.Is(err, oaserrors.ErrEmptyVersionSet) {
		return err
	}
	report.TestRange, err = idx.FindRange(versions.Metadata{IncludeAfter: flags.after, IncludeUntil: flags.until})
	if err != nil {
		return err
	}
	if flags.operations {
		keys, err := idx.Operations()
		if err != nil {
			return err
		}
		report.Operations = make(map[string][]string, len(keys))
		for _, key := range keys {
			if report.Operations[key.String()], err = idx.VersionsOf(key); err != nil {
				return err
			}
		}
	}

	out := cmd.OutOrStdout()
	if flags.format != FormatText {
		return OutputStructured(out, report, flags.format)
	}

	cliutil.Writef(out, "Versions: %s\n", strings.Join(report.Versions, ", "))
	if report.Latest != "" {
		cliutil.Writef(out, "Latest: %s\n", report.Latest)
	} else {
		cliutil.Writef(out, "Latest: (no dated versions)\n")
	}
	cliutil.Writef(out, "Test range: %s\n", strings.Join(report.TestRange, ", "))
	if flags.operations {
		keys, _ := idx.Operations()
		cliutil.Writef(out, "\nOperations (%d):\n", len(keys))
		for _, key := range keys {
			cliutil.Writef(out, "  %-40s %s\n", key.String(), strings.Join(report.Operations[key.String()], ", "))
		}
	}
	return nil
}
