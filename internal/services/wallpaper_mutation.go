package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Dias221467/Wallpaper_Hub/internal/apperrors"
	"github.com/Dias221467/Wallpaper_Hub/internal/models"
	"github.com/Dias221467/Wallpaper_Hub/internal/repository"
	"github.com/Dias221467/Wallpaper_Hub/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadInput is the metadata and image of a new wallpaper.
type UploadInput struct {
	Title       string
	Description string
	Category    string
	Image       []byte
	UploaderID  string
}

// UploadWallpaper validates the input, stores the image and records the
// wallpaper. Nothing is sent to the object store unless every field is valid.
func (s *WallpaperService) UploadWallpaper(ctx context.Context, in UploadInput) (*models.WallpaperView, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)

	failures := s.uploadSchema.Check(map[string]interface{}{
		"title":       in.Title,
		"description": in.Description,
		"category":    in.Category,
		"image":       in.Image,
	})

	var contentType, ext string
	if len(in.Image) > 0 {
		contentType = http.DetectContentType(in.Image)
		var ok bool
		if ext, ok = allowedImageTypes[contentType]; !ok {
			failures = append(failures, apperrors.FieldError{
				Field:   "image",
				Message: "Only JPEG, PNG, WEBP and GIF images are allowed",
			})
		}
	}
	if len(failures) > 0 {
		logger.Log.WithField("failures", len(failures)).Warn("Invalid wallpaper upload")
		return nil, apperrors.Validation(failures)
	}

	uploaderID, err := primitive.ObjectIDFromHex(in.UploaderID)
	if err != nil {
		return nil, apperrors.Unauthorized("Not authorized")
	}

	key := "wallpapers/" + uuid.NewString() + ext
	imageURL, err := s.store.Store(ctx, key, in.Image, contentType)
	if err != nil {
		logger.Log.WithError(err).WithField("key", key).Error("Failed to store wallpaper image")
		return nil, apperrors.Dependency("Failed to store image", err)
	}

	wallpaper, err := s.repo.CreateWallpaper(ctx, &models.Wallpaper{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    imageURL,
		Category:    in.Category,
		UploadedBy:  uploaderID,
	})
	if err != nil {
		// The image is orphaned without its record; remove it.
		if delErr := s.store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			logger.Log.WithError(delErr).WithField("key", key).Error("Failed to remove orphaned image")
		}
		return nil, apperrors.Dependency("Failed to save wallpaper", err)
	}

	uploader, err := s.users.GetUserByID(ctx, uploaderID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", uploaderID.Hex()).Warn("Failed to resolve uploader")
		uploader = nil
	}

	logger.Log.WithFields(logrus.Fields{
		"wallpaper_id": wallpaper.ID.Hex(),
		"user_id":      uploaderID.Hex(),
	}).Info("Wallpaper uploaded")

	view := models.NewWallpaperView(*wallpaper, uploader)
	return &view, nil
}

// AddFavorite adds userID to the wallpaper's favorites. A second call by the
// same user is a conflict.
func (s *WallpaperService) AddFavorite(ctx context.Context, wallpaperID, userID string) error {
	objID, err := parseWallpaperID(wallpaperID)
	if err != nil {
		return err
	}
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperrors.Unauthorized("Not authorized")
	}

	err = s.repo.AddFavorite(ctx, objID, userObjID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrAlreadyFavorited):
		return apperrors.Conflict("Wallpaper already in favorites")
	default:
		return wallpaperLookupError(err)
	}
}

// RecordDownload counts one download and returns the image URL to redirect to.
func (s *WallpaperService) RecordDownload(ctx context.Context, wallpaperID string) (string, error) {
	objID, err := parseWallpaperID(wallpaperID)
	if err != nil {
		return "", err
	}

	wallpaper, err := s.repo.IncrementDownloads(ctx, objID)
	if err != nil {
		return "", wallpaperLookupError(err)
	}
	return wallpaper.ImageURL, nil
}
