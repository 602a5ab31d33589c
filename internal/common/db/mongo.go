package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/creativestories/backend/internal/common/constants"
	"github.com/creativestories/backend/internal/common/logger"
)

// Connect dials the document store and verifies the connection with a ping.
// Startup blocks until the store answers or the attempt budget runs out.
func Connect(log *logger.Logger, uri, dbName string) *mongo.Database {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(constants.MongoConnectTimeout).
		SetServerSelectionTimeout(constants.MongoServerSelectionTimeout).
		SetAppName("creative-stories")

	for attempt := 1; attempt <= constants.MongoConnectMaxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), constants.MongoConnectTimeout)
		client, err := mongo.Connect(ctx, opts)
		if err == nil {
			err = client.Ping(ctx, readpref.Primary())
		}
		cancel()

		if err == nil {
			log.Infof("document store connected: database=%s", dbName)
			return client.Database(dbName)
		}

		log.Warnf("failed to connect to document store (attempt %d/%d): %v",
			attempt, constants.MongoConnectMaxAttempts, err)

		if attempt == constants.MongoConnectMaxAttempts {
			log.Fatalf("failed to connect to document store after %d attempts: %v",
				constants.MongoConnectMaxAttempts, err)
			return nil
		}

		time.Sleep(constants.MongoConnectRetryDelay)
	}

	return nil
}

// Disconnect closes the underlying client of a connected database handle.
func Disconnect(ctx context.Context, database *mongo.Database, log *logger.Logger) {
	if database == nil {
		return
	}
	if err := database.Client().Disconnect(ctx); err != nil {
		log.Errorf("failed to disconnect from document store: %v", err)
	}
}

// Ping reports store reachability, used by the health endpoint.
func Ping(ctx context.Context, database *mongo.Database) error {
	if database == nil {
		return mongo.ErrClientDisconnected
	}
	return database.Client().Ping(ctx, readpref.Primary())
}
