package cli

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
	"github.com/spf13/cobra"

	"github.com/pipspect/pipspect/pkg/inspect"
	"github.com/pipspect/pipspect/pkg/warehouse"
	"github.com/pipspect/pipspect/pkg/wheel"
)

// newInfoCmd creates the info command.
func newInfoCmd(flags *rootFlags) *cobra.Command {
	var (
		quiet   int
		details detailFlags
	)

	cmd := &cobra.Command{
		Use:   "info [project] [version] [dist]",
		Short: "Display project and release details",
		Long: `Display details of a project release.

Without a version, the greatest stable version is retrieved. Without a
dist, artifact detail covers all distributions the release provides; a
dist of "sdist" or a compatibility tag scopes it to that one artifact.

Detail grows with -v (repeatable) and shrinks with -q: quiet once keeps
only the title, quiet twice outputs nothing that isn't explicitly
forced by a section flag.`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			project, err := projectArg(args)
			if err != nil {
				return err
			}
			var version, distSpec string
			if len(args) > 1 {
				version = args[1]
			}
			if len(args) > 2 {
				distSpec = args[2]
			}

			// Sanity checks before making network requests.
			if version != "" {
				if _, err := goversion.NewVersion(version); err != nil {
					return fmt.Errorf("%w: %q", warehouse.ErrInvalidVersion, version)
				}
			}
			if distSpec != "" && distSpec != "sdist" {
				if _, err := wheel.ParseTag(distSpec); err != nil {
					return err
				}
			}

			client, err := flags.client(ctx)
			if err != nil {
				return err
			}

			spinner := newSpinner(ctx, "Fetching "+project)
			spinner.Start()
			release, err := client.ResolveRelease(ctx, project, version)
			spinner.Stop()
			if err != nil {
				return err
			}
			logger.Debug("resolved release", "project", release.Info.Name, "version", release.Info.Version)

			var dist *warehouse.DistributionURL
			if distSpec != "" {
				if dist, err = warehouse.PickDistribution(release, distSpec); err != nil {
					return err
				}
			}

			details.level = detailLevel(quiet, flags.verbose)

			var provides *inspect.Package
			if details.packages || details.executables {
				provides, err = inspectTarget(cmd, client, release, dist)
				if err != nil {
					logger.Warn("could not inspect wheel", "err", err)
				}
			}

			if out := renderRelease(release, dist, provides, details); out != "" {
				fmt.Println(out)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.CountVarP(&quiet, "quiet", "q", "display less detail (repeatable)")
	f.BoolVarP(&details.summary, "summary", "s", false, "display the project's summary")
	f.BoolVarP(&details.license, "license", "l", false, "display the project's license")
	f.BoolVarP(&details.urls, "urls", "u", false, "display the project's URLs")
	f.BoolVarP(&details.keywords, "keywords", "k", false, "display the project's keywords")
	f.BoolVarP(&details.classifiers, "classifiers", "c", false, "display the project's classifiers")
	f.CountVarP(&details.artifacts, "artifacts", "a", "display the project's artifact types (repeatable)")
	f.BoolVarP(&details.deps, "deps", "d", false, "display the project's dependencies")
	f.CountVarP(&details.readme, "readme", "r", "display the project's readme (repeatable)")
	f.BoolVarP(&details.packages, "packages", "p", false, "display the project's importable packages")
	f.BoolVarP(&details.executables, "executables", "e", false, "display the project's executable commands")

	return cmd
}

// inspectTarget downloads and inspects the wheel that the packages and
// executables sections describe: the scoped dist when it is a wheel,
// otherwise the most portable wheel of the release.
func inspectTarget(cmd *cobra.Command, client *warehouse.Client, release *warehouse.Release, dist *warehouse.DistributionURL) (*inspect.Package, error) {
	target := dist
	if target == nil || target.PackageType != "bdist_wheel" {
		best, err := warehouse.PickDistribution(release, "")
		if err != nil {
			return nil, err
		}
		target = best
	}

	ctx := cmd.Context()
	spinner := newSpinner(ctx, "Inspecting "+target.Filename)
	spinner.Start()
	defer spinner.Stop()
	return inspect.Fetch(ctx, client, target.URL)
}
