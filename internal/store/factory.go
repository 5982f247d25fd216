package store

import (
	"context"
	"survey/internal/providers"
	"survey/internal/store/interfaces"
	"survey/internal/structures"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const closeTimeout = 5 * time.Second

// NewResponseStore connects to the document store named in conf. When no
// URI is configured or the server does not answer a ping within the connect
// timeout, the in-memory store is returned instead; startup never fails on
// store connectivity.
func NewResponseStore(conf *structures.Config, logger providers.Logger) (interfaces.ResponseStoreInterface, func(), error) {
	if conf.Store.URI == "" {
		logger.Warnf(providers.TypeApp, "No document store configured, responses will be kept in memory only")
		return NewMemoryStore(), func() {}, nil
	}

	timeout := conf.Store.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	ms, err := connectMongo(conf, timeout)
	if err != nil {
		logger.Warnf(providers.TypeApp, "Document store unavailable, falling back to in-memory store: %v", err)
		return NewMemoryStore(), func() {}, nil
	}

	logger.Infof(providers.TypeApp, "Connected to document store %s.%s", conf.Store.Database, conf.Store.Collection)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := ms.Close(ctx); err != nil {
			logger.Errorf(providers.TypeApp, "Failed to close document store: %v", err)
		}
	}
	return ms, cleanup, nil
}

func connectMongo(conf *structures.Config, timeout time.Duration) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(conf.Store.URI).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	ms := NewMongoStore(client, conf.Store.Database, conf.Store.Collection)
	if err := ms.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return ms, nil
}
