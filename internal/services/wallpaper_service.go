package services

import (
	"github.com/Dias221467/Wallpaper_Hub/internal/storage"
	"github.com/Dias221467/Wallpaper_Hub/internal/validation"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	PopularLimit = 10

	maxTitleLen       = 50
	maxDescriptionLen = 500
)

// allowedImageTypes maps sniffed content types to the stored file extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// WallpaperService implements wallpaper listing, upload, favoriting and
// download tracking.
type WallpaperService struct {
	repo         WallpaperStore
	users        UserStore
	store        storage.ObjectStore
	maxPageLimit int
	uploadSchema *validation.Schema
}

// NewWallpaperService creates a WallpaperService. categories is the set of
// accepted wallpaper categories.
func NewWallpaperService(repo WallpaperStore, users UserStore, store storage.ObjectStore, categories []string, maxPageLimit int) *WallpaperService {
	return &WallpaperService{
		repo:         repo,
		users:        users,
		store:        store,
		maxPageLimit: maxPageLimit,
		uploadSchema: validation.NewSchema().
			Field("title",
				validation.Required("Title is required"),
				validation.MaxLen(maxTitleLen, "Title cannot be more than 50 characters")).
			Field("description",
				validation.MaxLen(maxDescriptionLen, "Description cannot be more than 500 characters")).
			Field("category",
				validation.Required("Please specify a category"),
				validation.OneOf(categories, "Invalid category")).
			Field("image",
				validation.NotEmptyBytes("image required")),
	}
}
