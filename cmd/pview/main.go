package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/pview-dev/pview/pkg/api"
	"github.com/pview-dev/pview/pkg/config"
	plog "github.com/pview-dev/pview/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	configPath string

	ojson bool

	// logFile is closed when the command returns.
	logFile io.Closer

	rootCmd = &cobra.Command{
		Use:               "pview",
		Short:             "Browse projects of a remote project API",
		Long:              "pview is a command line client for browsing the projects, trees, and files served by a project API.",
		SilenceUsage:      true,
		PersistentPreRunE: initContext,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&ojson, "json", false, "output as JSON")
	rootCmd.AddCommand(
		infoCmd,
		treeCmd,
		blobCmd,
		readmeCmd,
		showCmd,
		pathCmd,
		serveCmd,
		manCmd,
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version
}

func main() {
	os.Exit(run())
}

func run() int {
	defer func() {
		if logFile != nil {
			logFile.Close() // nolint: errcheck
		}
	}()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return 1
	}

	return 0
}

// initContext loads the configuration and puts the config, logger, and API
// client in the command context.
func initContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg := config.DefaultConfig()
	if configPath != "" {
		if err := config.ParseConfig(cfg, configPath); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
		if err := cfg.ParseEnv(); err != nil {
			return err
		}
	} else if err := cfg.Parse(); err != nil {
		return err
	}

	ctx = config.WithContext(ctx, cfg)

	logger, f, err := plog.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	if f != nil {
		logFile = f
	}

	// Set global logger
	log.SetDefault(logger)

	// Set the max number of processes to the number of CPUs
	// This is useful when running pview serve in a container
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	ctx = log.WithContext(ctx, logger)

	client, err := api.NewClient(cfg, api.WithUserAgent("pview/"+Version))
	if err != nil {
		return err
	}

	ctx = api.WithContext(ctx, client)
	cmd.SetContext(ctx)

	return nil
}

func writeJSON(w io.Writer, t any) error {
	bts, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bts))
	return err
}
