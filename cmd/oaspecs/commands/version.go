package commands

import (
	"github.com/spf13/cobra"

	oaspecs "github.com/gocutover/open-api-specs"
	"github.com/gocutover/open-api-specs/internal/cliutil"
)

func newVersionCommand() *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if long {
				cliutil.Writef(cmd.OutOrStdout(), "oaspecs\n%s\n", oaspecs.BuildInfo())
				return nil
			}
			cliutil.Writef(cmd.OutOrStdout(), "oaspecs %s\n", oaspecs.Version())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show commit, build time and Go version")
	return cmd
}
