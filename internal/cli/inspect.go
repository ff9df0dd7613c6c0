package cli

import (
	"github.com/spf13/cobra"

	"github.com/pipspect/pipspect/pkg/inspect"
	"github.com/pipspect/pipspect/pkg/warehouse"
	"github.com/pipspect/pipspect/pkg/wheel"
)

// newInspectCmd creates the inspect command.
func newInspectCmd(flags *rootFlags) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "inspect [project] [version]",
		Short: "Show what a wheel provides when installed",
		Long: `Download a wheel of the release and show the top-level import names,
installed scripts, and console_scripts entry points it provides. The
most portable wheel is used unless --tag selects another one.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			selector := ""
			if tag != "" {
				if _, err := wheel.ParseTag(tag); err != nil {
					return err
				}
				selector = tag
			}

			project, err := projectArg(args)
			if err != nil {
				return err
			}
			var version string
			if len(args) > 1 {
				version = args[1]
			}

			client, err := flags.client(ctx)
			if err != nil {
				return err
			}

			track := newProgress(logger)
			spinner := newSpinner(ctx, "Resolving "+project)
			spinner.Start()
			release, err := client.ResolveRelease(ctx, project, version)
			spinner.Stop()
			if err != nil {
				return err
			}

			dist, err := warehouse.PickDistribution(release, selector)
			if err != nil {
				return err
			}

			spinner = newSpinner(ctx, "Inspecting "+dist.Filename)
			spinner.Start()
			pkg, err := inspect.Fetch(ctx, client, dist.URL)
			spinner.Stop()
			if err != nil {
				return err
			}
			track.done("Inspected " + dist.Filename)

			printInfo("%s@%s (%s)", pkg.Metadata.Name, pkg.Metadata.Version, dist.Filename)
			for _, p := range pkg.Packages() {
				printDetail("■ %s", p)
			}
			for _, e := range pkg.Executables() {
				printDetail("▶ %s", e)
			}
			for _, s := range pkg.ConsoleScripts() {
				printDetail("▶ %s", s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "inspect the wheel with this compatibility tag")
	return cmd
}
