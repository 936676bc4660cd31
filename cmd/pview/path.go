package main

import (
	"fmt"

	"github.com/pview-dev/pview/pkg/project"
	"github.com/spf13/cobra"
)

var (
	pathOrg    string
	pathCommit string
)

var pathCmd = &cobra.Command{
	Use:   "path PROJECT [PATH]",
	Short: "Print the browser path of a project location",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := project.PathOptions{
			ProjectID: args[0],
			Org:       pathOrg,
			Commit:    pathCommit,
		}
		if len(args) > 1 {
			opts.Path = args[1]
		}

		fmt.Fprintln(cmd.OutOrStdout(), project.Path(opts))
		return nil
	},
}

func init() {
	pathCmd.Flags().StringVar(&pathOrg, "org", "", "organization owning the project")
	pathCmd.Flags().StringVar(&pathCommit, "commit", "", "commit of the location")
}
