package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pipspect/pipspect/pkg/buildinfo"
)

// Execute runs the pipspect CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The --verbose flag is counted; the info command also uses the count to
// raise its detail level. The logger is attached to the context and
// accessible to all commands via loggerFromContext.
func Execute(ctx context.Context) error {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "pipspect",
		Short: "Pipspect looks up Python projects and their artifacts",
		Long: `Pipspect is a CLI tool for querying Python package indexes: it resolves
project versions, identifies and ranks distributable artifacts by their
compatibility tags, and inspects what a wheel provides when installed.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if flags.verbose > 0 {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.CountVarP(&flags.verbose, "verbose", "v", "display more detail (repeatable)")
	pf.BoolVar(&flags.noCache, "no-cache", false, "bypass the HTTP response cache")
	pf.StringVar(&flags.redis, "redis", "", "use a Redis cache backend at this address")
	pf.StringVar(&flags.indexURL, "index", "", "package index base URL (default "+indexEnv+" or pypi.org)")

	root.AddCommand(newInfoCmd(flags))
	root.AddCommand(newVersionsCmd(flags))
	root.AddCommand(newDistCmd(flags))
	root.AddCommand(newInspectCmd(flags))
	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
