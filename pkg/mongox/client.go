package mongox

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/identado/mongo-identity/pkg/logger"
)

// Client wraps mongo.Client with additional functionality
type Client struct {
	*mongo.Client
	endpoint string
	logger   *logger.Logger
}

// ClientOption represents an option for creating a new client
type ClientOption func(*clientOptions)

type clientOptions struct {
	connectTimeout time.Duration
}

// WithConnectTimeout overrides the default connect/ping timeout
func WithConnectTimeout(d time.Duration) ClientOption {
	return func(opts *clientOptions) {
		opts.connectTimeout = d
	}
}

// NewClient creates a new document database client. The endpoint and access
// key are validated eagerly; the access key is applied as the credential
// password for the principal named in the endpoint URI.
func NewClient(endpoint, accessKey string, log *logger.Logger, opts ...ClientOption) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint cannot be empty")
	}
	if accessKey == "" {
		return nil, fmt.Errorf("access key cannot be empty")
	}

	if log == nil {
		log = logger.GetGlobalLogger()
	}

	copts := &clientOptions{connectTimeout: 5 * time.Second}
	for _, opt := range opts {
		opt(copts)
	}

	clientOpts := options.Client().ApplyURI(endpoint)
	if clientOpts.Auth != nil {
		clientOpts.Auth.Password = accessKey
		clientOpts.Auth.PasswordSet = true
	} else {
		clientOpts.SetAuth(options.Credential{Password: accessKey, PasswordSet: true})
	}

	ctx, cancel := context.WithTimeout(context.Background(), copts.connectTimeout)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	client := &Client{
		Client:   mongoClient,
		endpoint: endpoint,
		logger:   log.WithComponent("mongox"),
	}

	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		_ = mongoClient.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to reach MongoDB: %w", err)
	}

	client.logger.Info("MongoDB client connected successfully",
		zap.String("endpoint", endpoint),
	)

	return client, nil
}

// NewClientFromMongo wraps an already-connected mongo.Client. Useful when the
// caller manages connection options itself, for example against a local
// development instance without key auth.
func NewClientFromMongo(mc *mongo.Client, log *logger.Logger) (*Client, error) {
	if mc == nil {
		return nil, fmt.Errorf("mongo client cannot be nil")
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Client{
		Client: mc,
		logger: log.WithComponent("mongox"),
	}, nil
}

// Collection returns a handle to the named collection
func (c *Client) Collection(database, collection string) *mongo.Collection {
	return c.Database(database).Collection(collection)
}

// Close disconnects the client
func (c *Client) Close(ctx context.Context) error {
	c.logger.Info("Closing MongoDB connection")
	return c.Disconnect(ctx)
}

// HealthCheck performs a health check on the connection
func (c *Client) HealthCheck(ctx context.Context) error {
	start := time.Now()
	err := c.Ping(ctx, readpref.Primary())
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("MongoDB health check failed",
			zap.Error(err),
			zap.Duration("duration", duration),
		)
		return err
	}

	c.logger.Debug("MongoDB health check passed",
		zap.Duration("duration", duration),
	)

	return nil
}
