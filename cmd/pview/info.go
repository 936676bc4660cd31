package main

import (
	"fmt"
	"strings"

	"github.com/pview-dev/pview/pkg/api"
	"github.com/pview-dev/pview/pkg/project"
	"github.com/pview-dev/pview/pkg/proto"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info PROJECT",
	Short: "Print project information",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		info, err := project.GetInfo(ctx, api.FromContext(ctx), args[0])
		if err != nil {
			return err
		}

		if ojson {
			return writeJSON(cmd.OutOrStdout(), info)
		}

		printInfo(cmd, info)
		return nil
	},
}

func printInfo(cmd *cobra.Command, info *proto.Info) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, titleStyle.Render(info.Meta.Name))
	if desc := strings.TrimSpace(info.Meta.Description); desc != "" {
		fmt.Fprintln(w, desc)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Head:"), shaStyle.Render(info.Head))
	if len(info.Meta.Maintainers) > 0 {
		fmt.Fprintln(w, labelStyle.Render("Maintainers:"))
		for _, m := range info.Meta.Maintainers {
			fmt.Fprintf(w, "  %s\n", urnStyle.Render(m))
		}
	}
}
