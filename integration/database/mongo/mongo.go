package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Connection errors, matchable with errors.Is.
var (
	ErrEmptyConnectionURL = errors.New("empty mongodb connection URL")
	ErrMongoNotReady      = errors.New("mongodb did not become ready within the given time period")
	ErrHealthcheckFailed  = errors.New("mongodb healthcheck failed")
)

// Config holds MongoDB connection settings with environment variable mapping.
type Config struct {
	ConnectionURL  string        `env:"MONGODB_URL,required"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"30s"`
	RetryAttempts  int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

// New creates a MongoDB client and verifies connectivity with a ping,
// retrying transient failures. Atlas cold starts take several seconds, so a
// single failed ping must not abort application startup.
func New(ctx context.Context, cfg Config) (*mongo.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts := options.Client().ApplyURI(cfg.ConnectionURL)
	if cfg.ConnectTimeout > 0 {
		opts = opts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if lastErr = client.Ping(ctx, readpref.Primary()); lastErr == nil {
			return client, nil
		}
		select {
		case <-ctx.Done():
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, errors.Join(ErrMongoNotReady, ctx.Err())
		case <-time.After(interval):
		}
	}

	_ = client.Disconnect(context.WithoutCancel(ctx))
	return nil, errors.Join(ErrMongoNotReady, lastErr)
}

// NewWithDatabase creates a client and returns a handle to the named database.
func NewWithDatabase(ctx context.Context, cfg Config, database string) (*mongo.Database, error) {
	client, err := New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client.Database(database), nil
}

// Healthcheck returns a probe suitable for readiness endpoints.
func Healthcheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return fmt.Errorf("%w: %w", ErrHealthcheckFailed, err)
		}
		return nil
	}
}
