package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tinoosan/ncnews/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Info("configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("ADDR", cfg.Addr()),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("STORE", cfg.Store),
		slog.Bool("DEV_SEED", cfg.DevSeed),
		slog.Int("RATE_LIMIT_RPS", int(cfg.RateLimitRPS)),
		slog.Int64("MAX_REQUEST_BYTES", cfg.MaxRequestBytes),
	)

	store, err := openStore(ctx, cfg)
	if err != nil {
		appLogger.Error("failed to open store", "store", cfg.Store, "err", err)
		return err
	}
	defer store.Close()

	if err := applySchema(ctx, store); err != nil {
		appLogger.Error("failed to apply schema", "store", cfg.Store, "err", err)
		return err
	}
	if cfg.DevSeed {
		if err := seedIfEmpty(ctx, appLogger, store); err != nil {
			appLogger.Error("dev seed failed", "err", err)
		}
	}

	api := httpapi.New(store, appLogger, httpapi.Options{
		RateLimitRPS:    int(cfg.RateLimitRPS),
		RateLimitBurst:  int(cfg.RateLimitBurst),
		MaxRequestBytes: cfg.MaxRequestBytes,
	})
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("news service listening", "addr", srv.Addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		appLogger.Info("shutting down")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			appLogger.Error("server shutdown error", "err", err)
			return err
		}
		return nil
	case err := <-errCh:
		appLogger.Error("server error", "err", err)
		return err
	}
}
