package main

import (
	"errors"
	"fmt"

	"github.com/pview-dev/pview/pkg/api"
	"github.com/pview-dev/pview/pkg/project"
	"github.com/pview-dev/pview/pkg/proto"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// summary is the JSON output of the show command.
type summary struct {
	Info   *proto.Info `json:"info"`
	Tree   *proto.Tree `json:"tree"`
	Readme *proto.Blob `json:"readme,omitempty"`
}

var showCmd = &cobra.Command{
	Use:   "show PROJECT",
	Short: "Print a project overview",
	Long:  "Print the project information, the root tree at head, and the readme.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := api.FromContext(ctx)
		id := args[0]

		info, err := project.GetInfo(ctx, c, id)
		if err != nil {
			return err
		}

		s := summary{Info: info}
		errg, ectx := errgroup.WithContext(ctx)
		errg.Go(func() error {
			tree, err := project.GetTree(ectx, c, id, info.Head, "")
			if err != nil {
				return fmt.Errorf("tree: %w", err)
			}
			s.Tree = tree
			return nil
		})
		errg.Go(func() error {
			readme, err := project.GetReadme(ectx, c, id, info.Head)
			if errors.Is(err, api.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("readme: %w", err)
			}
			s.Readme = readme
			return nil
		})
		if err := errg.Wait(); err != nil {
			return err
		}

		if ojson {
			return writeJSON(cmd.OutOrStdout(), s)
		}

		w := cmd.OutOrStdout()
		printInfo(cmd, info)
		fmt.Fprintln(w)
		if err := printTree(cmd, s.Tree); err != nil {
			return err
		}

		if s.Readme != nil && !s.Readme.Binary {
			md, err := renderReadme(s.Readme, readmeWidth)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, md)
		}

		return nil
	},
}
