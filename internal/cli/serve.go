package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gamesearch/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = opts.cfg.ListenAddr
			}

			p := newPipeline(opts.cfg, opts.log)
			defer p.Close()

			srv := server.New(addr, p.engine, p.registry, opts.log.Named("server"))
			return run(cmd.Context(), srv, opts.log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides listen_addr)")
	return cmd
}

// run serves until ctx is cancelled, then shuts the server down.
func run(ctx context.Context, srv *server.Server, log *zap.Logger) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return <-errChan
}
