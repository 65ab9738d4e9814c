package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/variantlab/variantview/internal/store"
	"github.com/variantlab/variantview/internal/web"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the variant viewer web interface",
		Long: `Serve the HTML viewer: the enriched variant table, the raw input
table, and a form for adding input rows by hand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer s.Close()

			srv := web.NewServer(s)
			srv.SetLogger(logger)

			if addr == "" {
				addr = cfg.ListenAddr
			}
			httpServer := &http.Server{Addr: addr, Handler: srv.Handler()}

			errCh := make(chan error, 1)
			go func() { errCh <- httpServer.ListenAndServe() }()
			logger.Info("serving variant viewer", zap.String("addr", addr))

			select {
			case err := <-errCh:
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
