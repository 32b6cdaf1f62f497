package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Wallpaper_Hub/internal/models"
	"github.com/Dias221467/Wallpaper_Hub/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WallpaperRepository handles database operations related to wallpapers.
type WallpaperRepository struct {
	collection *mongo.Collection
}

// NewWallpaperRepository creates a new instance of WallpaperRepository.
func NewWallpaperRepository(db *mongo.Database) *WallpaperRepository {
	return &WallpaperRepository{
		collection: db.Collection("wallpapers"),
	}
}

// CreateWallpaper inserts a new wallpaper with zeroed counters.
func (r *WallpaperRepository) CreateWallpaper(ctx context.Context, wallpaper *models.Wallpaper) (*models.Wallpaper, error) {
	wallpaper.CreatedAt = time.Now().UTC()
	wallpaper.Favorites = []primitive.ObjectID{}
	wallpaper.FavoriteCount = 0
	wallpaper.DownloadCount = 0

	result, err := r.collection.InsertOne(ctx, wallpaper)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert wallpaper")
		return nil, fmt.Errorf("failed to insert wallpaper: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted ID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	wallpaper.ID = insertedID

	logger.Log.WithField("wallpaper_id", wallpaper.ID.Hex()).Info("Wallpaper created successfully")
	return wallpaper, nil
}

// GetWallpaperByID fetches a wallpaper by its ID.
func (r *WallpaperRepository) GetWallpaperByID(ctx context.Context, id primitive.ObjectID) (*models.Wallpaper, error) {
	var wallpaper models.Wallpaper
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&wallpaper)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		logger.Log.WithError(err).WithField("wallpaper_id", id.Hex()).Error("Failed to find wallpaper by ID")
		return nil, fmt.Errorf("failed to find wallpaper: %w", err)
	}
	return &wallpaper, nil
}

// FindWallpapers returns one page of wallpapers matching filter.
func (r *WallpaperRepository) FindWallpapers(ctx context.Context, filter models.WallpaperFilter, sort models.WallpaperSort, skip, limit int64) ([]models.Wallpaper, error) {
	opts := options.Find().
		SetSort(buildWallpaperSort(sort)).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, buildWallpaperFilter(filter), opts)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch wallpapers")
		return nil, fmt.Errorf("failed to fetch wallpapers: %w", err)
	}
	defer cursor.Close(ctx)

	wallpapers := []models.Wallpaper{}
	if err := cursor.All(ctx, &wallpapers); err != nil {
		return nil, fmt.Errorf("failed to decode wallpapers: %w", err)
	}
	return wallpapers, nil
}

// CountWallpapers counts every wallpaper matching filter, ignoring pagination.
func (r *WallpaperRepository) CountWallpapers(ctx context.Context, filter models.WallpaperFilter) (int64, error) {
	total, err := r.collection.CountDocuments(ctx, buildWallpaperFilter(filter))
	if err != nil {
		logger.Log.WithError(err).Error("Failed to count wallpapers")
		return 0, fmt.Errorf("failed to count wallpapers: %w", err)
	}
	return total, nil
}

// GetPopularWallpapers returns the most downloaded wallpapers, ties broken by
// favorite count.
func (r *WallpaperRepository) GetPopularWallpapers(ctx context.Context, limit int64) ([]models.Wallpaper, error) {
	opts := options.Find().SetSort(popularSort).SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch popular wallpapers")
		return nil, fmt.Errorf("failed to fetch popular wallpapers: %w", err)
	}
	defer cursor.Close(ctx)

	wallpapers := []models.Wallpaper{}
	if err := cursor.All(ctx, &wallpapers); err != nil {
		return nil, fmt.Errorf("failed to decode popular wallpapers: %w", err)
	}
	return wallpapers, nil
}

// AddFavorite appends userID to the wallpaper's favorites in one atomic
// update. It returns ErrAlreadyFavorited when userID is already present.
func (r *WallpaperRepository) AddFavorite(ctx context.Context, wallpaperID, userID primitive.ObjectID) error {
	filter := bson.M{
		"_id":       wallpaperID,
		"favorites": bson.M{"$ne": userID},
	}
	update := bson.M{
		"$push": bson.M{"favorites": userID},
		"$inc":  bson.M{"favorite_count": 1},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"wallpaper_id": wallpaperID.Hex(),
			"user_id":      userID.Hex(),
		}).Error("Failed to add favorite")
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	if result.MatchedCount > 0 {
		logger.Log.WithFields(map[string]interface{}{
			"wallpaper_id": wallpaperID.Hex(),
			"user_id":      userID.Hex(),
		}).Info("Favorite added")
		return nil
	}

	// Nothing matched: either the wallpaper is missing or the user is already there.
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": wallpaperID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("failed to check wallpaper existence: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrAlreadyFavorited
}

// IncrementDownloads atomically adds one to the download counter and returns
// the updated wallpaper.
func (r *WallpaperRepository) IncrementDownloads(ctx context.Context, id primitive.ObjectID) (*models.Wallpaper, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var wallpaper models.Wallpaper
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"download_count": 1}},
		opts,
	).Decode(&wallpaper)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		logger.Log.WithError(err).WithField("wallpaper_id", id.Hex()).Error("Failed to increment download count")
		return nil, fmt.Errorf("failed to increment download count: %w", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"wallpaper_id":   id.Hex(),
		"download_count": wallpaper.DownloadCount,
	}).Info("Download recorded")
	return &wallpaper, nil
}
