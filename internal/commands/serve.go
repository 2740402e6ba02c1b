package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/account-viewer/internal/viewer"
)

func newServeCommand(flags *viewerFlags) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the account page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Viewer.Port = port
			}
			log := newLogger(cfg.LogLevel, cmd.OutOrStdout())

			renderer, err := viewer.NewRenderer()
			if err != nil {
				return fmt.Errorf("parsing templates: %w", err)
			}
			client := viewer.NewProxyClient(cfg.Viewer.ProxyURL, cfg.Viewer.Timeout)
			loader := viewer.NewLoader(client, cfg.Viewer.AccountID)

			srv := &http.Server{
				Addr:              ":" + cfg.Viewer.Port,
				Handler:           viewer.NewRouter(log, loader, renderer),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("viewer listening", "port", cfg.Viewer.Port, "proxy", cfg.Viewer.ProxyURL, "account_id", cfg.Viewer.AccountID)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server start failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}
			log.Warn("shutdown signal received")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			log.Info("viewer exited")
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides VIEWER_PORT)")

	return cmd
}
