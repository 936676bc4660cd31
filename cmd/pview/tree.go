package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/caarlos0/tablewriter"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/pview-dev/pview/pkg/api"
	"github.com/pview-dev/pview/pkg/project"
	"github.com/pview-dev/pview/pkg/proto"
	"github.com/spf13/cobra"
)

// summaryWidth is the widest a commit summary gets in a tree listing.
const summaryWidth = 50

var treeCommit string

var treeCmd = &cobra.Command{
	Use:     "tree PROJECT [PATH]",
	Aliases: []string{"ls"},
	Short:   "Print project tree at path",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := api.FromContext(ctx)
		id := args[0]
		path := ""
		if len(args) > 1 {
			path = args[1]
		}

		commit, err := resolveCommit(ctx, c, id, treeCommit)
		if err != nil {
			return err
		}

		tree, err := project.GetTree(ctx, c, id, commit, path)
		if err != nil {
			return err
		}

		if ojson {
			return writeJSON(cmd.OutOrStdout(), tree)
		}

		return printTree(cmd, tree)
	},
}

func init() {
	treeCmd.Flags().StringVar(&treeCommit, "commit", "", "commit to list, defaults to the project head")
}

// resolveCommit returns commit, or the project head when commit is empty.
func resolveCommit(ctx context.Context, g project.Getter, id proto.Urn, commit string) (string, error) {
	if commit != "" {
		return commit, nil
	}

	info, err := project.GetInfo(ctx, g, id)
	if err != nil {
		return "", err
	}

	return info.Head, nil
}

// sortEntries returns the entries with directories first, each group
// sorted by name.
func sortEntries(entries []proto.Entry) []proto.Entry {
	ents := make([]proto.Entry, len(entries))
	copy(ents, entries)
	sort.SliceStable(ents, func(i, j int) bool {
		if ents[i].IsTree() != ents[j].IsTree() {
			return ents[i].IsTree()
		}
		return ents[i].Info.Name < ents[j].Info.Name
	})
	return ents
}

func printTree(cmd *cobra.Command, tree *proto.Tree) error {
	w := cmd.OutOrStdout()
	if len(tree.Entries) == 0 {
		fmt.Fprintln(w, "No entries found")
	} else if err := tablewriter.Render(
		w,
		sortEntries(tree.Entries),
		[]string{"Type", "Name", "Last Commit", "Updated"},
		func(e proto.Entry) ([]string, error) {
			name := filenameStyle.Render(e.Info.Name)
			kind := "file"
			if e.IsTree() {
				name = dirnameStyle.Render(e.Info.Name + "/")
				kind = "dir"
			}

			updated := "-"
			if e.Info.LastCommit.CommitterTime > 0 {
				updated = humanize.Time(e.Info.LastCommit.Time())
			}

			return []string{
				kind,
				name,
				truncate.StringWithTail(e.Info.LastCommit.Summary, summaryWidth, "…"),
				updated,
			}, nil
		},
	); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s commits · %s contributors\n",
		humanize.Comma(int64(tree.Stats.Commits)),
		humanize.Comma(int64(tree.Stats.Contributors)))
	return nil
}
