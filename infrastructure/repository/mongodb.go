package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// appName identifies annotator connections in the server logs.
const appName = "multilabel"

// annotationIndexName is the unique (dataset, img_filename) index that
// backs mirror upserts.
const annotationIndexName = "dataset_img_filename"

// MongoDB is the connection used by the annotation mirror.
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *slog.Logger
}

// MongoDBConfig contains configuration for the mirror connection.
type MongoDBConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

// DefaultMongoDBConfig returns default configuration.
func DefaultMongoDBConfig() *MongoDBConfig {
	return &MongoDBConfig{
		URI:            "mongodb://localhost:27017",
		Database:       "multilabel",
		ConnectTimeout: 10 * time.Second,
		PingTimeout:    5 * time.Second,
	}
}

// clientOptions builds the driver options for cfg. Server selection gives up
// after the connect timeout so an unreachable mirror fails fast at startup.
func clientOptions(cfg *MongoDBConfig) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
}

// NewMongoDB connects and verifies the server answers a ping.
func NewMongoDB(ctx context.Context, cfg *MongoDBConfig, logger *slog.Logger) (*MongoDB, error) {
	if cfg == nil {
		cfg = DefaultMongoDBConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to annotation mirror: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("annotation mirror did not answer: %w", err)
	}

	// The URI may carry credentials, so only the database is logged
	logger.Info("Annotation mirror connected", "database", cfg.Database)

	return &MongoDB{
		client:   client,
		database: client.Database(cfg.Database),
		logger:   logger,
	}, nil
}

// Close disconnects from MongoDB.
func (m *MongoDB) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

// Collection returns a collection by name.
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

// DatabaseName returns the name of the connected database.
func (m *MongoDB) DatabaseName() string {
	return m.database.Name()
}

// annotationIndex describes the unique key of mirrored records.
func annotationIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{
			{Key: "dataset", Value: 1},
			{Key: "img_filename", Value: 1},
		},
		Options: options.Index().SetName(annotationIndexName).SetUnique(true),
	}
}

// EnsureAnnotationIndex creates the unique (dataset, img_filename) index on
// the named collection. Creating an existing index is a no-op.
func (m *MongoDB) EnsureAnnotationIndex(ctx context.Context, collection string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name, err := m.Collection(collection).Indexes().CreateOne(ctx, annotationIndex())
	if err != nil {
		return fmt.Errorf("failed to create annotation index: %w", err)
	}

	m.logger.Debug("Annotation index ready", "collection", collection, "index", name)
	return nil
}
