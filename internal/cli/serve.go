package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"prev-engine/internal/engine"
	"prev-engine/internal/handler"
	"prev-engine/internal/repository"
	"prev-engine/internal/tables"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the calculation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger

	store, err := tables.Open(cfg.TablesFile, logger)
	if err != nil {
		return err
	}
	registry := tables.NewRegistry(store, cfg.TablesRegistryURL, logger)
	defer registry.Close()

	var cache repository.CacheRepository = repository.NewMemoryCache()
	if cfg.RedisAddr != "" {
		rc := repository.NewRedisCache(cfg.RedisAddr)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			return err
		}
		cache = rc
	}

	var history repository.HistoryRepository = repository.NewHistoryMemory()
	if cfg.HistoryDB != "" {
		sq, err := repository.NewSQLiteHistory(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer sq.Close()
		history = sq
	}

	eng := engine.New(registry,
		engine.WithCache(cache, cfg.CacheTTL),
		engine.WithHistory(history),
		engine.WithLogger(logger))
	h := handler.New(eng, history, registry, logger)

	limiter := handler.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	server := &fasthttp.Server{
		Name:         "prev-engine",
		Handler:      handler.RateLimit(limiter, h.Routes()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("prev-engine starting",
			zap.String("port", cfg.Port),
			zap.Int("tables_year", store.Current().Year))
		if err := server.ListenAndServe(":" + cfg.Port); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.ShutdownWithContext(sctx)
	})

	if cfg.TablesFile != "" {
		g.Go(func() error {
			return store.Watch(gctx, cfg.TablesFile)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}
