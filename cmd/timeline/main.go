package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-timeline/internal/adapter"
	"github.com/feral-file/ff-timeline/internal/config"
	"github.com/feral-file/ff-timeline/internal/domain"
	"github.com/feral-file/ff-timeline/internal/logger"
	"github.com/feral-file/ff-timeline/internal/providers/jetstream"
	"github.com/feral-file/ff-timeline/internal/results"
	"github.com/feral-file/ff-timeline/internal/snapshot"
	"github.com/feral-file/ff-timeline/internal/store"
	"github.com/feral-file/ff-timeline/internal/timeline"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadTimelineConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "timeline",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.InfoCtx(ctx, "Starting Timeline")

	// Stop the run on interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := run(ctx, cfg); err != nil {
		logger.ErrorCtx(ctx, err)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}

	logger.InfoCtx(ctx, "Timeline finished")
	logger.Flush(2 * time.Second)
}

func run(ctx context.Context, cfg *config.TimelineConfig) error {
	// Initialize adapters
	clock := adapter.NewClockIn(cfg.Snapshots.Location())
	fs := adapter.NewFileSystem()
	jsonAdapter := adapter.NewJSON()

	// Initialize snapshot source
	source := snapshot.NewFileSource(&snapshot.Config{
		Dir:    cfg.Snapshots.Dir,
		Prefix: cfg.Snapshots.Prefix,
	}, fs, jsonAdapter, clock)
	if cfg.Snapshots.LiveURL != "" {
		httpClient := adapter.NewHTTPClient(cfg.Snapshots.HTTPTimeout)
		source = snapshot.WithLive(source, cfg.Snapshots.LiveURL, httpClient, clock)
	}

	snapshots, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshots: %w", err)
	}

	// Initialize result sinks
	var (
		openers   []results.Opener
		dataStore store.Store
	)
	for _, name := range cfg.Results.Sinks {
		switch name {
		case config.SinkFile:
			openers = append(openers, func(ctx context.Context) (results.Sink, error) {
				logger.InfoCtx(ctx, "Writing timelines to files", zap.String("dir", cfg.Results.Dir))
				return results.NewFileSink(cfg.Results.Dir, fs, jsonAdapter), nil
			})

		case config.SinkDatabase:
			openers = append(openers, func(ctx context.Context) (results.Sink, error) {
				st, err := openStore(cfg.Database)
				if err != nil {
					return nil, err
				}
				logger.InfoCtx(ctx, "Connected to database",
					zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
					zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
				)
				dataStore = st
				return results.NewStoreSink(st, jsonAdapter, adapter.NewJCS()), nil
			})

		case config.SinkNATS:
			openers = append(openers, func(ctx context.Context) (results.Sink, error) {
				publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
					URL:            cfg.NATS.URL,
					StreamName:     cfg.NATS.StreamName,
					SubjectPrefix:  cfg.NATS.SubjectPrefix,
					MaxReconnects:  cfg.NATS.MaxReconnects,
					ReconnectWait:  cfg.NATS.ReconnectWait,
					ConnectionName: cfg.NATS.ConnectionName,
				}, adapter.NewNatsJetStream(), jsonAdapter)
				if err != nil {
					return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
				}
				logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
				return results.NewPublisherSink(publisher), nil
			})

		default:
			return fmt.Errorf("%w: %q", domain.ErrUnknownSink, name)
		}
	}

	sink, err := results.OpenAll(ctx, openers...)
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			logger.WarnCtx(ctx, "Failed to close result sinks", zap.Error(err))
		}
	}()

	// Run the analyzers over every entity
	runner := timeline.NewRunner(&timeline.RunnerConfig{
		WorkerPoolSize: cfg.Worker.WorkerPoolSize,
		QueueSize:      cfg.Worker.WorkerQueueSize,
	}, sink, clock)

	summary, err := runner.Run(ctx, snapshots)
	if err != nil {
		return fmt.Errorf("timeline run %s failed for %d entities: %w", summary.RunID, summary.Failed, err)
	}

	if dataStore != nil {
		last := snapshots[len(snapshots)-1].Identifier
		if err := dataStore.SetKeyValue(ctx, domain.LastSnapshotKey, last); err != nil {
			return fmt.Errorf("failed to record last snapshot: %w", err)
		}
	}

	logger.InfoCtx(ctx, "Timeline run completed",
		zap.String("run_id", summary.RunID),
		zap.Int("snapshots", summary.Snapshots),
		zap.Int("residents", summary.Residents),
		zap.Int("towns", summary.Towns),
		zap.Duration("duration", summary.Duration),
	)

	return nil
}

// openStore connects to PostgreSQL and applies the pool settings
func openStore(cfg config.DatabaseConfig) (store.Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	st := store.NewPGStore(db)
	if err := store.ConfigureConnectionPool(db, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	return st, nil
}
