package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"groomer-portal/internal/adapters/flash"
	"groomer-portal/internal/platform/config"
	"groomer-portal/internal/platform/logger"
	"groomer-portal/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{Config: cfg, Logger: log}

	if cfg.RedisAddr != "" {
		store, err := flash.NewRedisStore(ctx, cfg.RedisAddr)
		if err != nil {
			return fmt.Errorf("redis flash store: %w", err)
		}
		defer store.Close()
		opts.Flash = store
		log.Info("flash: redis", map[string]any{"addr": cfg.RedisAddr})
	}

	h, closeRouter, err := router.NewRouter(opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRouter(); err != nil {
			log.Warn("close router resources", map[string]any{"error": err})
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "site_url": cfg.SiteURL})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
