// Package cli implements the partshop command line.
package cli

import (
	"io"
	"log/slog"

	"partshop/internal/config"
	"partshop/pkg/logger"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
}

// NewRootCommand creates the root command for the partshop CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "partshop",
		Short: "partshop - auto parts store admin service",
		Long:  "Admin API for the parts catalog and storefront carts, with database and fixture tooling.",
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (YAML, JSON or TOML); environment variables take precedence")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// setup loads the configuration and builds the process logger. Logs go to
// w so command output on stdout stays clean.
func (o *RootOptions) setup(w io.Writer) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	log := logger.New(logger.Options{
		Service: "partshop",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Output:  w,
	})
	return cfg, log, nil
}
