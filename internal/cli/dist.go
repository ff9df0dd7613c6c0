package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipspect/pipspect/pkg/warehouse"
	"github.com/pipspect/pipspect/pkg/wheel"
)

// newDistCmd creates the dist command.
func newDistCmd(flags *rootFlags) *cobra.Command {
	var (
		tag         string
		sdist       bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "dist [project] [version]",
		Short: "Resolve one distributable artifact of a release",
		Long: `Resolve one distributable artifact of a release.

By default the most portable wheel is chosen: universal beats pure,
pure beats any-platform, any-platform beats any-ABI, and
platform-specific wheels come last. Use --sdist for the source archive,
--tag for an exact compatibility tag match, or --pick to choose
interactively.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if sdist && tag != "" {
				return fmt.Errorf("--sdist and --tag are mutually exclusive")
			}
			selector := ""
			if sdist {
				selector = "sdist"
			} else if tag != "" {
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

			spinner := newSpinner(ctx, "Resolving "+project)
			spinner.Start()
			release, err := client.ResolveRelease(ctx, project, version)
			spinner.Stop()
			if err != nil {
				return err
			}

			var dist *warehouse.DistributionURL
			if interactive {
				dist, err = runDistPicker(release)
				if err != nil {
					return err
				}
				if dist == nil {
					printWarning("No artifact selected")
					return nil
				}
			} else {
				if dist, err = warehouse.PickDistribution(release, selector); err != nil {
					return err
				}
			}

			printSuccess("%s", dist.Filename)
			printKeyValue("URL", dist.URL)
			if dist.Digests.SHA256 != "" {
				printKeyValue("SHA256", dist.Digests.SHA256)
			}
			printKeyValue("Size", fmt.Sprintf("%d bytes", dist.Size))
			if dist.UploadTimeISO != "" {
				printKeyValue("Uploaded", dist.UploadTimeISO)
			}
			if dist.Yanked {
				printWarning("This artifact has been yanked: %s", dist.YankedReason)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&tag, "tag", "", "match this compatibility tag exactly")
	f.BoolVar(&sdist, "sdist", false, "choose the source archive")
	f.BoolVar(&interactive, "pick", false, "choose interactively")
	return cmd
}
