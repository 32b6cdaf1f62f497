package services

import (
	"context"
	"errors"
	"math"

	"github.com/Dias221467/Wallpaper_Hub/internal/apperrors"
	"github.com/Dias221467/Wallpaper_Hub/internal/models"
	"github.com/Dias221467/Wallpaper_Hub/internal/repository"
	"github.com/Dias221467/Wallpaper_Hub/internal/validation"
	"github.com/Dias221467/Wallpaper_Hub/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListQuery describes one page of a wallpaper listing. Non-positive Page and
// Limit fall back to the defaults.
type ListQuery struct {
	Filter models.WallpaperFilter
	Sort   models.WallpaperSort
	Page   int
	Limit  int
}

// ListResult is one page of wallpapers plus the totals used for paging.
type ListResult struct {
	Items      []models.WallpaperView
	Total      int64
	TotalPages int
	Page       int
	Limit      int
}

func (s *WallpaperService) normalize(q ListQuery) ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if s.maxPageLimit > 0 && q.Limit > s.maxPageLimit {
		q.Limit = s.maxPageLimit
	}
	// Keep (Page-1)*Limit within int64 so the skip never wraps negative.
	if maxSkipPages := math.MaxInt64 / int64(q.Limit); int64(q.Page-1) > maxSkipPages {
		q.Page = int(maxSkipPages) + 1
	}
	if q.Sort.Field == "" || !repository.IsSortable(q.Sort.Field) {
		q.Sort = models.DefaultWallpaperSort
	}
	return q
}

// ListWallpapers returns a filtered, sorted page of wallpapers.
func (s *WallpaperService) ListWallpapers(ctx context.Context, q ListQuery) (*ListResult, error) {
	q = s.normalize(q)
	skip := int64(q.Page-1) * int64(q.Limit)

	total, err := s.repo.CountWallpapers(ctx, q.Filter)
	if err != nil {
		return nil, apperrors.Dependency("Failed to list wallpapers", err)
	}

	wallpapers, err := s.repo.FindWallpapers(ctx, q.Filter, q.Sort, skip, int64(q.Limit))
	if err != nil {
		return nil, apperrors.Dependency("Failed to list wallpapers", err)
	}

	items, err := s.resolveUploaders(ctx, wallpapers)
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"page":  q.Page,
		"limit": q.Limit,
		"total": total,
	}).Info("Wallpapers listed")

	return &ListResult{
		Items:      items,
		Total:      total,
		TotalPages: totalPages(total, q.Limit),
		Page:       q.Page,
		Limit:      q.Limit,
	}, nil
}

func totalPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// GetPopularWallpapers returns up to PopularLimit wallpapers ordered by
// downloads, then favorites.
func (s *WallpaperService) GetPopularWallpapers(ctx context.Context, limit int) ([]models.WallpaperView, error) {
	if limit < 1 || limit > PopularLimit {
		limit = PopularLimit
	}

	wallpapers, err := s.repo.GetPopularWallpapers(ctx, int64(limit))
	if err != nil {
		return nil, apperrors.Dependency("Failed to fetch popular wallpapers", err)
	}
	return s.resolveUploaders(ctx, wallpapers)
}

// GetWallpaper fetches a single wallpaper by its hex id.
func (s *WallpaperService) GetWallpaper(ctx context.Context, id string) (*models.WallpaperView, error) {
	objID, err := parseWallpaperID(id)
	if err != nil {
		return nil, err
	}

	wallpaper, err := s.repo.GetWallpaperByID(ctx, objID)
	if err != nil {
		return nil, wallpaperLookupError(err)
	}

	items, err := s.resolveUploaders(ctx, []models.Wallpaper{*wallpaper})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// resolveUploaders replaces uploader ids with {id, username} using one lookup
// for the whole batch.
func (s *WallpaperService) resolveUploaders(ctx context.Context, wallpapers []models.Wallpaper) ([]models.WallpaperView, error) {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, w := range wallpapers {
		if !seen[w.UploadedBy] {
			seen[w.UploadedBy] = true
			ids = append(ids, w.UploadedBy)
		}
	}

	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Dependency("Failed to resolve uploaders", err)
	}
	byID := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	views := make([]models.WallpaperView, 0, len(wallpapers))
	for _, w := range wallpapers {
		views = append(views, models.NewWallpaperView(w, byID[w.UploadedBy]))
	}
	return views, nil
}

var wallpaperIDSchema = validation.NewSchema().
	Field("id", validation.MongoID("Invalid wallpaper ID"))

func parseWallpaperID(id string) (primitive.ObjectID, error) {
	if err := wallpaperIDSchema.Validate(map[string]interface{}{"id": id}); err != nil {
		return primitive.NilObjectID, err
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation([]apperrors.FieldError{
			{Field: "id", Message: "Invalid wallpaper ID"},
		})
	}
	return objID, nil
}

func wallpaperLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Wallpaper not found")
	}
	return apperrors.Dependency("Failed to fetch wallpaper", err)
}
