package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionsCmd creates the versions command.
func newVersionsCmd(flags *rootFlags) *cobra.Command {
	var quiet int

	cmd := &cobra.Command{
		Use:   "versions [project]",
		Short: "List all versions of a project, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			project, err := projectArg(args)
			if err != nil {
				return err
			}
			client, err := flags.client(ctx)
			if err != nil {
				return err
			}

			spinner := newSpinner(ctx, "Fetching "+project)
			spinner.Start()
			p, err := client.Project(ctx, project)
			spinner.Stop()
			if err != nil {
				return err
			}

			fmt.Println(renderVersions(p, detailLevel(quiet, flags.verbose)))
			return nil
		},
	}

	cmd.Flags().CountVarP(&quiet, "quiet", "q", "omit the project name header")
	return cmd
}
