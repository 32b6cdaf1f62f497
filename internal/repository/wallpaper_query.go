package repository

import (
	"regexp"

	"github.com/Dias221467/Wallpaper_Hub/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// sortFields maps client sort names to document fields.
var sortFields = map[string]string{
	models.SortCreatedAt:     "created_at",
	models.SortTitle:         "title",
	models.SortCategory:      "category",
	models.SortDownloadCount: "download_count",
	models.SortFavorites:     "favorite_count",
}

// IsSortable reports whether field can be used in a listing sort.
func IsSortable(field string) bool {
	_, ok := sortFields[field]
	return ok
}

// buildWallpaperFilter turns a listing filter into a conjunctive query.
func buildWallpaperFilter(f models.WallpaperFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Search != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}
	if !f.FromDate.IsZero() {
		filter["created_at"] = bson.M{"$gte": f.FromDate}
	}
	return filter
}

// buildWallpaperSort resolves s to a sort document. _id is appended as a
// tiebreaker so that pages do not overlap.
func buildWallpaperSort(s models.WallpaperSort) bson.D {
	field, ok := sortFields[s.Field]
	if !ok {
		s = models.DefaultWallpaperSort
		field = sortFields[s.Field]
	}
	dir := 1
	if s.Desc {
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

var popularSort = bson.D{
	{Key: "download_count", Value: -1},
	{Key: "favorite_count", Value: -1},
	{Key: "_id", Value: 1},
}
