package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wallpaper is a stored image with its metadata and engagement counters.
type Wallpaper struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title         string               `bson:"title" json:"title"`
	Description   string               `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL      string               `bson:"image_url" json:"imageUrl"`
	Category      string               `bson:"category" json:"category"`
	UploadedBy    primitive.ObjectID   `bson:"uploaded_by" json:"uploadedBy"`
	Favorites     []primitive.ObjectID `bson:"favorites" json:"favorites"`
	FavoriteCount int                  `bson:"favorite_count" json:"favoriteCount"`
	DownloadCount int64                `bson:"download_count" json:"downloadCount"`
	CreatedAt     time.Time            `bson:"created_at" json:"createdAt"`
}

// WallpaperView is a wallpaper with its uploader resolved for display.
type WallpaperView struct {
	ID            primitive.ObjectID   `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description,omitempty"`
	ImageURL      string               `json:"imageUrl"`
	Category      string               `json:"category"`
	UploadedBy    PublicUser           `json:"uploadedBy"`
	Favorites     []primitive.ObjectID `json:"favorites"`
	FavoriteCount int                  `json:"favoriteCount"`
	DownloadCount int64                `json:"downloadCount"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// NewWallpaperView pairs w with its uploader. A missing uploader keeps the id
// and leaves the username empty.
func NewWallpaperView(w Wallpaper, uploader *User) WallpaperView {
	favorites := w.Favorites
	if favorites == nil {
		favorites = []primitive.ObjectID{}
	}
	view := WallpaperView{
		ID:            w.ID,
		Title:         w.Title,
		Description:   w.Description,
		ImageURL:      w.ImageURL,
		Category:      w.Category,
		UploadedBy:    PublicUser{ID: w.UploadedBy},
		Favorites:     favorites,
		FavoriteCount: w.FavoriteCount,
		DownloadCount: w.DownloadCount,
		CreatedAt:     w.CreatedAt,
	}
	if uploader != nil {
		view.UploadedBy.Username = uploader.Username
	}
	return view
}

// WallpaperFilter narrows a listing. Zero values mean "no constraint".
type WallpaperFilter struct {
	Category string
	Search   string
	FromDate time.Time
}

// Sortable wallpaper fields, named as clients send them in sortBy.
const (
	SortCreatedAt     = "createdAt"
	SortTitle         = "title"
	SortCategory      = "category"
	SortDownloadCount = "downloadCount"
	SortFavorites     = "favorites"
)

// WallpaperSort is one sort key and its direction.
type WallpaperSort struct {
	Field string
	Desc  bool
}

// DefaultWallpaperSort is newest first.
var DefaultWallpaperSort = WallpaperSort{Field: SortCreatedAt, Desc: true}
