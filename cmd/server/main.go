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

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/precificalc/internal/config"
	"github.com/Simplici0/precificalc/internal/db"
	"github.com/Simplici0/precificalc/internal/logging"
	"github.com/Simplici0/precificalc/internal/products"
	"github.com/Simplici0/precificalc/internal/products/boltstore"
	"github.com/Simplici0/precificalc/internal/products/sqlitestore"
	"github.com/Simplici0/precificalc/internal/seed"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "precificalc: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	for _, warning := range cfg.Warnings() {
		logger.Warn(warning, zap.String("op", "config"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := products.NewService(store, logger)

	if cfg.SeedDemo {
		stats, err := seed.Run(ctx, svc)
		if err != nil {
			return fmt.Errorf("seed demo products: %w", err)
		}
		logger.Info("demo seed finished",
			zap.Int("inserts", stats.Inserts),
			zap.Int("skipped", stats.Skipped),
		)
	}

	auth, err := newAuthService(cfg.SessionSecret)
	if err != nil {
		return err
	}

	srv, err := newServer(svc, auth, logger, newIPRateLimiter(cfg.APIRateLimit, cfg.APIRateBurst))
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", httpServer.Addr),
			zap.String("storage", cfg.StorageDriver),
			zap.String("env", cfg.AppEnv),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore returns the products.Store selected by STORAGE_DRIVER and a
// function releasing its resources.
func openStore(ctx context.Context, cfg config.Config) (products.Store, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverBolt:
		store, err := boltstore.Open(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.DriverMemory:
		return products.NewMemoryStore(), func() {}, nil
	default:
		database, err := db.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return sqlitestore.New(database), func() { _ = database.Close() }, nil
	}
}
