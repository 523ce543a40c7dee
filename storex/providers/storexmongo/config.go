package storexmongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/reqcraft/reqcraft/asyncx"
	"github.com/reqcraft/reqcraft/storex"
)

// Config holds MongoDB connection settings, loadable from the environment
// with caarlos0/env.
type Config struct {
	URI            string        `env:"MONGO_URI,required"`
	Database       string        `env:"MONGO_DATABASE,required"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize    uint64        `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
	RetryAttempts  int           `env:"MONGO_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"MONGO_RETRY_INTERVAL" envDefault:"2s"`
}

// Connect establishes a MongoDB connection and verifies it with a ping,
// retrying a few times to ride out cold starts and brief network hiccups.
func Connect(ctx context.Context, cfg Config) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize)

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	db, err := asyncx.Retry(ctx, attempts, cfg.RetryInterval, func(ctx context.Context) (*mongo.Database, error) {
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return nil, err
		}

		pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		err = client.Ping(pingCtx, readpref.Primary())
		cancel()
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}

		return client.Database(cfg.Database), nil
	})
	if err != nil {
		return nil, storex.StoreErrors.NewWithCause(storex.ErrConnectionFailed, err)
	}
	return db, nil
}
