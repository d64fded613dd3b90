package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gocutover/open-api-specs/compiler"
	"github.com/gocutover/open-api-specs/internal/cliutil"
)

// compileFlags contains flags for the compile command
type compileFlags struct {
	out      string
	format   string
	versions []string
}

func newCompileCommand(g *globalOptions) *cobra.Command {
	flags := &compileFlags{}
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Write one OpenAPI document per version",
		Long: `Compile every version the fragment tree defines, draft included, and write
each document to <out>/<version>.json (or .yaml).

With --strict a document with validation errors fails the command; otherwise
issues are reported and the document is written anyway.`,
		Example: `  oaspecs compile --root specs --out build
  oaspecs compile --format yaml --version draft --version 20210101
  oaspecs compile --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompile(cmd, g, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.out, "out", "o", "build", "output directory")
	cmd.Flags().StringVarP(&flags.format, "format", "f", g.env.Format, "output format: json or yaml")
	cmd.Flags().StringSliceVar(&flags.versions, "version", nil, "compile only these versions (repeatable)")
	cmd.Flags().BoolVar(&g.env.Strict, "strict", g.env.Strict, "fail when a document has validation errors")
	return cmd
}

func runCompile(cmd *cobra.Command, g *globalOptions, flags *compileFlags) error {
	if err := ValidateOutputFormat(flags.format, false); err != nil {
		return err
	}
	idx, err := g.index(cmd.Context())
	if err != nil {
		return err
	}

	var results []*compiler.Result
	if len(flags.versions) == 0 {
		results, err = idx.DocumentsContext(cmd.Context())
		if err != nil {
			return err
		}
	} else {
		for _, v := range flags.versions {
			r, err := idx.DocumentForContext(cmd.Context(), v)
			if err != nil {
				return fmt.Errorf("compiling %s: %w", v, err)
			}
			results = append(results, r)
		}
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		cliutil.Writef(out, "%s\n", r.Summary())
	}

	written, err := WriteDocuments(flags.out, flags.format, results)
	if err != nil {
		return err
	}
	for _, path := range written {
		cliutil.Writef(out, "wrote %s\n", path)
	}
	return nil
}
