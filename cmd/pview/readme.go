package main

import (
	"fmt"

	"github.com/pview-dev/pview/pkg/api"
	"github.com/pview-dev/pview/pkg/project"
	"github.com/pview-dev/pview/pkg/proto"
	"github.com/spf13/cobra"
)

var (
	readmeCommit string
	readmeRaw    bool
	readmeWidth  int
)

var readmeCmd = &cobra.Command{
	Use:   "readme PROJECT",
	Short: "Render the project readme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := api.FromContext(ctx)
		id := args[0]

		commit, err := resolveCommit(ctx, c, id, readmeCommit)
		if err != nil {
			return err
		}

		readme, err := project.GetReadme(ctx, c, id, commit)
		if err != nil {
			return err
		}

		if ojson {
			return writeJSON(cmd.OutOrStdout(), readme)
		}

		content := readme.Content
		if !readmeRaw {
			content, err = renderReadme(readme, readmeWidth)
			if err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), content)
		return nil
	},
}

// renderReadme renders a markdown readme with glamour. Binary and
// server-rendered HTML readmes are returned as is.
func renderReadme(readme *proto.Blob, width int) (string, error) {
	if readme.Binary || readme.HTML {
		return readme.Content, nil
	}
	return glamourize(width, readme.Content)
}

func init() {
	readmeCmd.Flags().StringVar(&readmeCommit, "commit", "", "commit to read, defaults to the project head")
	readmeCmd.Flags().BoolVarP(&readmeRaw, "raw", "r", false, "Print raw markdown")
	readmeCmd.Flags().IntVarP(&readmeWidth, "width", "w", 80, "Word wrap width")
}
