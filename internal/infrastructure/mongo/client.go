package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/fastygo/homeplanner/internal/config"
	"github.com/fastygo/homeplanner/repository"
)

// Connect creates a Mongo client, verifies it with a ping and returns the
// configured database handle.
func Connect(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := options.Client().ApplyURI(cfg.URI).SetAppName(cfg.AppName)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxPoolSize))
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	logger.Info("connected to mongo", zap.String("database", cfg.Database))
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the owner index every list and delete query relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, name := range []string{
		repository.CollectionAreas,
		repository.CollectionWeeklyTasks,
		repository.CollectionContacts,
	} {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("userId_1"),
		}
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
		logger.Debug("owner index ensured", zap.String("collection", name))
	}
	return nil
}

// Pinger adapts a Mongo client to the health monitor probe.
type Pinger struct {
	Client *mongo.Client
}

func (p Pinger) Name() string { return "mongo" }

func (p Pinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx, readpref.Primary())
}
