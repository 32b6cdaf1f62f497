package services

import (
	"context"

	"github.com/Dias221467/Wallpaper_Hub/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the credential store consumed by the services.
// *repository.UserRepository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
}

// WallpaperStore is the wallpaper repository consumed by the services.
// *repository.WallpaperRepository satisfies it.
type WallpaperStore interface {
	CreateWallpaper(ctx context.Context, wallpaper *models.Wallpaper) (*models.Wallpaper, error)
	GetWallpaperByID(ctx context.Context, id primitive.ObjectID) (*models.Wallpaper, error)
	FindWallpapers(ctx context.Context, filter models.WallpaperFilter, sort models.WallpaperSort, skip, limit int64) ([]models.Wallpaper, error)
	CountWallpapers(ctx context.Context, filter models.WallpaperFilter) (int64, error)
	GetPopularWallpapers(ctx context.Context, limit int64) ([]models.Wallpaper, error)
	AddFavorite(ctx context.Context, wallpaperID, userID primitive.ObjectID) error
	IncrementDownloads(ctx context.Context, id primitive.ObjectID) (*models.Wallpaper, error)
}
