package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Rrens/docchat/internal/app"
	"github.com/Rrens/docchat/internal/config"
	"github.com/Rrens/docchat/internal/logger"
)

// cli carries the state shared by all subcommands
type cli struct {
	configPath string
	verbose    bool

	app       *app.App
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "chatctl",
		Short: "Inspect docchat sessions and settings",
		Long: `Inspect the chat sessions and settings stored by the docchat server.

Quick Start:
  chatctl sessions              # List sessions, most recent first
  chatctl settings              # Show the provider configuration
  chatctl export <session-id>   # Print a session transcript`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to config file (defaults to CONFIG_PATH or ./configs/config.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newSessionsCmd(c),
		newSettingsCmd(c),
		newExportCmd(c),
	)
	return root
}

// withApp opens the application state around fn and closes it afterwards
func (c *cli) withApp(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := c.open(cmd); err != nil {
			return err
		}
		defer func() {
			if cerr := c.close(); err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args)
	}
}

func (c *cli) open(cmd *cobra.Command) error {
	_ = godotenv.Load()

	if c.configPath != "" {
		if err := os.Setenv("CONFIG_PATH", c.configPath); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Logging.File = ""
	cfg.Logging.Level = "warn"
	if c.verbose {
		cfg.Logging.Level = "debug"
	}
	if c.logCloser, err = logger.Setup(cfg.Logging, "development"); err != nil {
		return err
	}

	c.app, err = app.New(cmd.Context(), cfg)
	return err
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close(c.logCloser)
	c.app = nil
	return err
}
