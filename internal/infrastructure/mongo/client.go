package mongo

import (
	"context"
	"time"

	mongolib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/fastygo/dualseed/internal/config"
)

// NewClient connects to MongoDB and performs a health check.
func NewClient(ctx context.Context, cfg config.DocumentConfig, logger *zap.Logger) (*mongolib.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := options.Client().
		ApplyURI(cfg.URI()).
		SetRegistry(NewRegistry())

	client, err := mongolib.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("connected to mongo", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return client, nil
}

// Close disconnects the client and logs the result.
func Close(ctx context.Context, client *mongolib.Client, logger *zap.Logger) error {
	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		return err
	}
	if logger != nil {
		logger.Info("mongo client disconnected")
	}
	return nil
}
