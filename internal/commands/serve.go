package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/latch/internal/api"
	"github.com/balkashynov/latch/internal/auth"
	"github.com/balkashynov/latch/internal/clock"
	"github.com/balkashynov/latch/internal/config"
	"github.com/balkashynov/latch/internal/db"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the feeding log over HTTP",
	Long: `Run the JSON API so other clients can log feedings and read statistics.

Every request except /healthz needs "Authorization: Bearer <token>"; mint one
with 'latch token'. Requires auth.jwt_secret (or LATCH_AUTH_JWT_SECRET).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		logger := newLogger(cfg.Log, os.Stderr)

		tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			return err
		}

		store, err := db.Open(db.Options{
			Driver: cfg.Database.Driver,
			Path:   cfg.Database.Path,
			DSN:    cfg.Database.DSN,
			Debug:  cfg.Debug(),
		})
		if err != nil {
			return err
		}
		defer store.Close()

		srv := api.NewServer(store, tokens, clock.System{Location: loc}, logger)
		httpServer := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      srv.Routes(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server starting", "addr", cfg.Server.Addr, "driver", cfg.Database.Driver)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
