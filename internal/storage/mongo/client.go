package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/backoff"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
)

const (
	usersCollection   = "users"
	tokensCollection  = "refresh_tokens"
	designsCollection = "designs"
	imagesCollection  = "user_images"
	uploadsBucket     = "uploads"
)

type Config struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`

	ConnectTimeout         time.Duration `mapstructure:"connect_timeout"`
	ServerSelectionTimeout time.Duration `mapstructure:"server_selection_timeout"`
	SocketTimeout          time.Duration `mapstructure:"socket_timeout"`
	MaxPoolSize            uint64        `mapstructure:"max_pool_size"`
	MinPoolSize            uint64        `mapstructure:"min_pool_size"`
	MaxConnIdleTime        time.Duration `mapstructure:"max_conn_idle_time"`
}

func (c *Config) ApplyDefaults() {
	if c.Database == "" {
		c.Database = "mockupgenerator"
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.ServerSelectionTimeout <= 0 {
		c.ServerSelectionTimeout = 10 * time.Second
	}
	if c.SocketTimeout <= 0 {
		c.SocketTimeout = 45 * time.Second
	}
	if c.MaxPoolSize == 0 {
		c.MaxPoolSize = 10
	}
	if c.MinPoolSize == 0 {
		c.MinPoolSize = 1
	}
	if c.MaxConnIdleTime <= 0 {
		c.MaxConnIdleTime = 30 * time.Second
	}
}

func (c Config) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("mongo: uri is required")
	}
	return nil
}

// Client is a process-scoped lazily-initialized handle to the document
// store. The underlying connection is probed before reuse and rebuilt
// transparently after failures, so every repository call sees a live
// database or an error.
type Client struct {
	cfg Config
	log *logger.Logger

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, log: log.Named("mongo")}, nil
}

// Database returns a live handle, connecting on first use. A cached handle
// that fails its liveness probe is discarded and re-established.
func (c *Client) Database(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := c.client.Ping(pingCtx, readpref.Primary())
		cancel()
		if err == nil {
			return c.db, nil
		}
		c.log.WithContext(ctx).Warn("cached connection failed, reconnecting", zap.Error(err))
		_ = c.client.Disconnect(ctx)
		c.client, c.db = nil, nil
	}

	opts := options.Client().
		ApplyURI(c.cfg.URI).
		SetConnectTimeout(c.cfg.ConnectTimeout).
		SetServerSelectionTimeout(c.cfg.ServerSelectionTimeout).
		SetSocketTimeout(c.cfg.SocketTimeout).
		SetMaxPoolSize(c.cfg.MaxPoolSize).
		SetMinPoolSize(c.cfg.MinPoolSize).
		SetMaxConnIdleTime(c.cfg.MaxConnIdleTime).
		SetRetryWrites(true).
		SetRetryReads(true).
		SetCompressors([]string{"zlib"})

	var client *mongo.Client
	err := backoff.Execute(ctx, backoff.Config{MaxElapsedTime: c.cfg.ConnectTimeout}, c.log, func(ctx context.Context) error {
		var err error
		client, err = mongo.Connect(ctx, opts)
		if err != nil {
			return err
		}
		if err = client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	db := client.Database(c.cfg.Database)

	// Provisioned lazily on every fresh connection; failures are logged but
	// never block serving (indexes usually already exist).
	if err := ensureIndexes(ctx, db); err != nil {
		c.log.WithContext(ctx).Warn("index provisioning skipped", zap.Error(err))
	}

	c.client, c.db = client, db
	c.log.WithContext(ctx).Info("connected", zap.String("database", c.cfg.Database))
	return db, nil
}

// Ping probes the cached connection for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Database(ctx)
	return err
}

// Close disconnects the cached client.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client, c.db = nil, nil
	return err
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = db.Collection(tokensCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}},
		// TTL reaping is storage hygiene only; the refresh flow still checks
		// expiresAt explicitly.
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		return fmt.Errorf("refresh_tokens indexes: %w", err)
	}

	_, err = db.Collection(designsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: -1}}},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "isPublic", Value: 1}, {Key: "updatedAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("designs indexes: %w", err)
	}
	return nil
}
