package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"partshop/internal/app"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API",
		Long:         "Migrates the database, starts the catalog event consumer and serves the HTTP API until SIGINT or SIGTERM.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts, cmd)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions, cmd *cobra.Command) error {
	cfg, log, err := opts.setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	if err := a.ConsumeEvents(); err != nil {
		log.Warn("catalog event consumer not started", "error", err)
	}

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- a.Listen()
	}()

	select {
	case err := <-listenErr:
		app.LogCleanupError(log, "server", a.Shutdown(context.Background()))
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server gracefully stopped")
	return nil
}
