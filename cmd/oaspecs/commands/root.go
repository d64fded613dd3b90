// Package commands implements the oaspecs command tree.
package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gocutover/open-api-specs/fragment"
	"github.com/gocutover/open-api-specs/internal/cliutil"
	"github.com/gocutover/open-api-specs/internal/envconfig"
	"github.com/gocutover/open-api-specs/oaserrors"
	"github.com/gocutover/open-api-specs/versions"
)

// errFailed is returned after a command has already reported why it failed,
// so the process exits non-zero without printing the reason twice.
var errFailed = errors.New("failed")

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	env     *envconfig.Config
	verbose bool
	logger  fragment.Logger
}

// NewRootCommand builds the oaspecs command tree. Environment defaults are
// read when the command is built; flags override them.
func NewRootCommand() *cobra.Command {
	g := &globalOptions{env: envconfig.Load(), logger: fragment.NopLogger{}}

	root := &cobra.Command{
		Use:   "oaspecs",
		Short: "Compile versioned OpenAPI documents from YAML fragments",
		Long: `oaspecs builds OpenAPI 3.0 documents from a tree of YAML fragments: one file
per operation (widgets/get.yml), optionally versioned (widgets/get/20210101.yml),
plus component and top-level files. It writes one document per API version,
lists the versions a tree defines and resolves operation templates.

Defaults come from OASPECS_ROOT, OASPECS_API_PREFIX, OASPECS_DRAFT_ONLY,
OASPECS_FORMAT and OASPECS_STRICT.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			g.logger = fragment.NewSlogAdapter(slog.New(handler))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&g.env.Root, "root", "r", g.env.Root, "fragment tree directory")
	flags.StringVar(&g.env.APIPrefix, "api-prefix", g.env.APIPrefix, "path prefix carried by every operation")
	flags.IntVar(&g.env.Concurrency, "concurrency", g.env.Concurrency, "files loaded in parallel (0: GOMAXPROCS)")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newCompileCommand(g),
		newVersionsCommand(g),
		newTemplateCommand(g),
		newValidateCommand(g),
		newMCPCommand(),
		newVersionCommand(),
	)
	return root
}

// index builds the index and scans the tree under ctx, so an interrupt
// stops a slow load.
func (g *globalOptions) index(ctx context.Context) (*versions.Index, error) {
	idx, err := versions.New(g.env.IndexOptions(g.logger)...)
	if err != nil {
		return nil, err
	}
	if err := idx.Scan(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	return executeCommand(ctx, NewRootCommand())
}

// executeCommand runs cmd and reports its error on stderr. A parse error is
// followed by the line-numbered source of the file that failed.
func executeCommand(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if errors.Is(err, errFailed) {
		return 1
	}
	stderr := cmd.ErrOrStderr()
	cliutil.Writef(stderr, "Error: %v\n", err)
	var pe *oaserrors.ParseError
	if errors.As(err, &pe) {
		if dump := pe.NumberedSource(); dump != "" {
			cliutil.Writef(stderr, "\n%s:\n%s", pe.Path, dump)
		}
	}
	return 1
}
