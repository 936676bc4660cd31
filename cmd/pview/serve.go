package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/pview-dev/pview/cmd/pview/serve"
	"github.com/pview-dev/pview/pkg/config"
	"github.com/pview-dev/pview/pkg/snapshot"
	"github.com/spf13/cobra"
)

var dataPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve project snapshots over the project API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg := config.FromContext(ctx)
		if !cfg.Exist() {
			if err := cfg.WriteConfig(); err != nil {
				return fmt.Errorf("write config file: %w", err)
			}
		}

		if dataPath != "" {
			cfg.HTTP.DataPath = dataPath
		}

		store, err := snapshot.Load(cfg.HTTP.DataPath)
		if err != nil {
			return fmt.Errorf("load snapshots: %w", err)
		}

		log.FromContext(ctx).Info("loaded snapshots", "path", cfg.HTTP.DataPath, "projects", store.Len())

		s, err := serve.NewServer(ctx, store)
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return s.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&dataPath, "data", "", "directory holding project snapshots")
}
