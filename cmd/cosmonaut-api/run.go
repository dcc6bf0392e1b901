package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cosmonaut-api/internal/app"
	"github.com/cosmonaut-api/internal/config"
	"github.com/cosmonaut-api/internal/database"
	"github.com/cosmonaut-api/internal/logging"
	"github.com/cosmonaut-api/internal/metrics"
	"github.com/cosmonaut-api/internal/queue"
	"github.com/cosmonaut-api/internal/server"
)

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.Bool("verbose") {
		cfg.Verbose = true
	}

	sugar, err := logging.New(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer sugar.Desugar().Sync() //nolint:errcheck // best-effort flush; ignore sync errors

	sugar.Infow("config",
		"listenAddr", cfg.ListenAddr,
		"databaseDriver", cfg.DatabaseDriver,
		"publisherDriver", cfg.PublisherDriver,
		"publishTimeout", cfg.PublishTimeout,
		"shutdownTimeout", cfg.ShutdownTimeout,
		"metricsEnabled", cfg.MetricsEnabled,
		"metricsAddr", cfg.MetricsAddr,
	)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The store must be ready before the first request is accepted.
	db, store, err := database.Connect(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			sugar.Warnw("failed to close database", "error", err)
		}
		sugar.Info("database closed")
	}()
	sugar.Infow("database ready", "driver", cfg.DatabaseDriver, "table", database.TableName)

	publisher, closePublisher, err := newPublisher(ctx, cfg, sugar)
	if err != nil {
		return err
	}
	defer closePublisher()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	a := &app.App{
		Cosmonauts: store,
		Publisher:  publisher,
		Log:        sugar,
		Metrics:    m,
	}

	api := server.New(cfg.ListenAddr, a)
	apiErr, err := api.Start()
	if err != nil {
		return err
	}
	sugar.Infow("api listening", "addr", api.Addr())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return waitAndShutdown(gctx, "api", apiErr, api.Shutdown, cfg, sugar) })

	if cfg.MetricsEnabled {
		ms := metrics.NewServer(cfg.MetricsAddr, registry, sugar)
		msErr, err := ms.Start()
		if err != nil {
			stop() // takes the api server down with it
			_ = g.Wait()
			return err
		}
		sugar.Infow("metrics listening", "addr", ms.Addr())
		g.Go(func() error { return waitAndShutdown(gctx, "metrics", msErr, ms.Shutdown, cfg, sugar) })
	}

	if err := g.Wait(); err != nil {
		return err
	}
	sugar.Info("shutdown complete")
	return nil
}

// waitAndShutdown blocks until ctx is cancelled or the server fails, then
// shuts the server down within the configured timeout.
func waitAndShutdown(
	ctx context.Context,
	name string,
	errCh <-chan error,
	shutdown func(context.Context) error,
	cfg config.Config,
	sugar *zap.SugaredLogger,
) error {
	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	sugar.Infow("shutting down", "server", name)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s shutdown: %w", name, err)
	}
	return nil
}

func newPublisher(ctx context.Context, cfg config.Config, sugar *zap.SugaredLogger) (queue.Publisher, func(), error) {
	switch cfg.PublisherDriver {
	case queue.DriverAMQP:
		return queue.NewAMQPPublisher(cfg.AMQPURL, cfg.PublishTimeout, sugar), func() {}, nil
	case queue.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  cfg.PublishTimeout,
			WriteTimeout: cfg.PublishTimeout,
		})
		pingCtx, cancel := context.WithTimeout(ctx, cfg.PublishTimeout)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return queue.NewRedisPublisher(rdb), func() { _ = rdb.Close() }, nil
	case queue.DriverMemory:
		sugar.Warn("memory publisher selected; creation messages stay in process")
		return queue.NewRecorder(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", queue.ErrUnknownDriver, cfg.PublisherDriver)
	}
}
