// Command query-api serves the query engine over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fplchat/query-engine/internal/cache"
	"github.com/fplchat/query-engine/internal/config"
	"github.com/fplchat/query-engine/internal/history"
	"github.com/fplchat/query-engine/internal/observability"
	"github.com/fplchat/query-engine/internal/snapshot"
	"github.com/fplchat/query-engine/pkg/engine"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg *config.Config, logger *observability.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snapshots := snapshot.NewStore()
	provider := &snapshot.FileProvider{Path: cfg.Dataset.Path}
	if err := snapshots.Refresh(ctx, provider); err != nil {
		return fmt.Errorf("initial snapshot load: %w", err)
	}

	refresher := snapshot.NewRefresher(snapshots, provider, cfg.Dataset.RefreshInterval, logger)
	go refresher.Run(ctx)

	turnStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer turnStore.Close()

	cacheClient, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer cacheClient.Close()

	eng, err := engine.New(engine.Options{
		Snapshots:      snapshots,
		History:        turnStore,
		Cache:          cacheClient,
		Logger:         logger,
		HistoryDepth:   cfg.Engine.HistoryDepth,
		TopN:           cfg.Engine.TopN,
		MaxTopN:        cfg.Engine.MaxTopN,
		FuzzyThreshold: cfg.Engine.FuzzyThreshold,
		CacheResults:   cfg.Engine.CacheResults,
		CacheTTL:       cfg.Cache.TTL,
	})
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      newRouter(eng, refresher, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("query api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openHistory(cfg *config.Config) (history.Store, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		return history.OpenSQL("sqlite3", cfg.Database.SQLite.Path, cfg.Engine.HistoryDepth)
	case "postgres":
		return history.OpenSQL("postgres", cfg.Database.Postgres.DSN, cfg.Engine.HistoryDepth)
	default:
		return history.NewMemoryStore(cfg.Engine.HistoryDepth), nil
	}
}

func openCache(cfg *config.Config) (cache.Client, error) {
	if cfg.Cache.Driver == "redis" {
		return cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
	}
	return cache.NewMemoryClient(cfg.Cache.MaxEntries), nil
}
