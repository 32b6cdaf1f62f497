package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Wallpaper_Hub/internal/config"
	"github.com/Dias221467/Wallpaper_Hub/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// ConnectDB opens the process-wide client and verifies the deployment is
// reachable.
func ConnectDB(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Log.WithField("database", cfg.DBName).Info("Connected to MongoDB")
	return client, client.Database(cfg.DBName), nil
}

// EnsureIndexes creates the indexes the queries rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = db.Collection("wallpapers").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "download_count", Value: -1}, {Key: "favorite_count", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create wallpapers indexes: %w", err)
	}

	logger.Log.Info("MongoDB indexes ensured")
	return nil
}
