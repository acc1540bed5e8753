package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	mongolib "go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fastygo/dualseed/domain"
	"github.com/fastygo/dualseed/internal/config"
	mongoInfra "github.com/fastygo/dualseed/internal/infrastructure/mongo"
	"github.com/fastygo/dualseed/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/dualseed/internal/infrastructure/postgres"
	"github.com/fastygo/dualseed/internal/services/lifecycle"
	"github.com/fastygo/dualseed/pkg/logger"
	mongoRepo "github.com/fastygo/dualseed/repository/mongo"
	"github.com/fastygo/dualseed/repository/postgres"
	"github.com/fastygo/dualseed/usecase/dualwrite"
	"github.com/fastygo/dualseed/usecase/generate"
	"github.com/fastygo/dualseed/usecase/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	baseLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}

	appCtx, cancel := context.WithCancel(context.Background())
	appCtx = logger.ContextWithRunID(appCtx, uuid.NewString())
	zapLogger := logger.WithRunID(appCtx, baseLogger)

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	stopSignals := manager.Listen(cancel)

	code := 0
	if err := run(appCtx, cfg, manager, zapLogger); err != nil {
		zapLogger.Error("seed failed",
			zap.String("stage", string(domain.CodeOf(err))),
			zap.Error(err))
		code = 1
	}

	stopSignals()
	cancel()
	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
	_ = baseLogger.Sync()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, zapLogger *zap.Logger) error {
	pool, client, err := connect(ctx, cfg, zapLogger)
	if pool != nil {
		manager.Register("postgres", func(context.Context) error {
			pgInfra.Close(pool, zapLogger)
			return nil
		})
	}
	if client != nil {
		manager.Register("mongo", func(ctx context.Context) error {
			return mongoInfra.Close(ctx, client, zapLogger)
		})
	}
	if err != nil {
		return domain.WrapError(domain.ErrCodeConnection, "connect stores", err)
	}

	mon := monitor.New(map[string]monitor.Probe{
		"postgres": pool.Ping,
		"mongo": func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
	}, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(context.Context) error {
		mon.Stop()
		return nil
	})

	writer := dualwrite.NewWriter(
		postgres.NewRelationalStore(pool),
		mongoRepo.NewDocumentStore(client.Database(cfg.Document.Name)),
		cfg.Seed.BatchSize,
		zapLogger,
	)
	factory := generate.NewFactory(generate.WithLogger(zapLogger))
	migrator := pgInfra.NewMigrator(cfg.Relational, cfg.Migrations.Enabled, zapLogger)

	pipeline := seed.NewPipeline(migrator, writer, factory, cfg.Seed, zapLogger)
	report, err := pipeline.Run(ctx)
	status := mon.GetStatus()
	zapLogger.Info("store status",
		zap.Any("stores", status.Stores),
		zap.Time("last_check", status.LastCheck))
	if err != nil {
		return err
	}

	zapLogger.Info("seed report",
		zap.Int("customers", report.Customers),
		zap.Int("products", report.Products),
		zap.Int("sales", report.Sales),
		zap.Int("sale_products", report.SaleProducts),
		zap.Duration("duration", report.Duration))
	return nil
}

// connect opens both stores concurrently. Handles that did connect are
// returned even when the other store failed so they can still be closed.
func connect(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (*pgxpool.Pool, *mongolib.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Context.ConnectTimeout)
	defer cancel()

	var (
		pool   *pgxpool.Pool
		client *mongolib.Client
	)
	g, gctx := errgroup.WithContext(connectCtx)
	g.Go(func() error {
		var err error
		pool, err = pgInfra.NewPool(gctx, cfg.Relational, zapLogger)
		return err
	})
	g.Go(func() error {
		var err error
		client, err = mongoInfra.NewClient(gctx, cfg.Document, zapLogger)
		return err
	})
	err := g.Wait()
	return pool, client, err
}
