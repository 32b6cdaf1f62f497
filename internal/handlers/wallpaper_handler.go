package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dias221467/Wallpaper_Hub/internal/apperrors"
	"github.com/Dias221467/Wallpaper_Hub/internal/models"
	"github.com/Dias221467/Wallpaper_Hub/internal/services"
	"github.com/Dias221467/Wallpaper_Hub/pkg/logger"
	"github.com/Dias221467/Wallpaper_Hub/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// multipartOverhead leaves room for the text fields and part headers around
// the image itself.
const multipartOverhead = 1 << 20

// WallpaperService is what WallpaperHandler needs from the wallpaper service.
type WallpaperService interface {
	ListWallpapers(ctx context.Context, q services.ListQuery) (*services.ListResult, error)
	GetPopularWallpapers(ctx context.Context, limit int) ([]models.WallpaperView, error)
	GetWallpaper(ctx context.Context, id string) (*models.WallpaperView, error)
	UploadWallpaper(ctx context.Context, in services.UploadInput) (*models.WallpaperView, error)
	AddFavorite(ctx context.Context, wallpaperID, userID string) error
	RecordDownload(ctx context.Context, wallpaperID string) (string, error)
}

// WallpaperHandler handles HTTP requests related to wallpapers.
type WallpaperHandler struct {
	Service       WallpaperService
	MaxUploadSize int64
}

// NewWallpaperHandler creates a new instance of WallpaperHandler.
func NewWallpaperHandler(service WallpaperService, maxUploadSize int64) *WallpaperHandler {
	return &WallpaperHandler{Service: service, MaxUploadSize: maxUploadSize}
}

// ListWallpapersHandler returns one page of wallpapers matching the query string.
func (h *WallpaperHandler) ListWallpapersHandler(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)

	result, err := h.Service.ListWallpapers(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(result.Items),
		"pagination": map[string]interface{}{
			"current":    result.Page,
			"total":      result.TotalPages,
			"limit":      result.Limit,
			"totalItems": result.Total,
		},
		"data": result.Items,
	})
}

// GetPopularWallpapersHandler returns the most downloaded wallpapers.
func (h *WallpaperHandler) GetPopularWallpapersHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.GetPopularWallpapers(r.Context(), services.PopularLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

// GetWallpaperHandler returns a single wallpaper.
func (h *WallpaperHandler) GetWallpaperHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	wallpaper, err := h.Service.GetWallpaper(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    wallpaper,
	})
}

// UploadWallpaperHandler accepts a multipart form with the wallpaper metadata
// and the image file.
func (h *WallpaperHandler) UploadWallpaperHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, r, apperrors.Unauthorized("Not authorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.MaxUploadSize); err != nil {
		logger.Log.WithError(err).Warn("Failed to parse upload form")
		writeError(w, r, apperrors.BadRequest("File too big or invalid format"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	image, err := readFormFile(r, "image", h.MaxUploadSize)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to read uploaded image")
		writeError(w, r, apperrors.BadRequest("File too big or invalid format"))
		return
	}

	wallpaper, err := h.Service.UploadWallpaper(r.Context(), services.UploadInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Image:       image,
		UploaderID:  claims.UserID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    wallpaper,
	})
}

// AddFavoriteHandler adds the wallpaper to the caller's favorites.
func (h *WallpaperHandler) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, r, apperrors.Unauthorized("Not authorized"))
		return
	}
	id := mux.Vars(r)["id"]

	if err := h.Service.AddFavorite(r.Context(), id, claims.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Added to favorites",
	})
}

// DownloadWallpaperHandler counts the download and redirects to the image.
func (h *WallpaperHandler) DownloadWallpaperHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	imageURL, err := h.Service.RecordDownload(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.Redirect(w, r, imageURL, http.StatusFound)
}

// readFormFile returns nil without error when the part is absent so the
// service can report it alongside the other field errors.
func readFormFile(r *http.Request, name string, limit int64) ([]byte, error) {
	file, _, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errors.New("image exceeds upload limit")
	}
	return data, nil
}

func parseListQuery(r *http.Request) services.ListQuery {
	values := r.URL.Query()

	q := services.ListQuery{
		Filter: models.WallpaperFilter{
			Category: strings.TrimSpace(values.Get("category")),
			Search:   strings.TrimSpace(values.Get("search")),
		},
		Sort:  parseSort(values.Get("sortBy")),
		Page:  atoiOrZero(values.Get("page")),
		Limit: atoiOrZero(values.Get("limit")),
	}

	if raw := strings.TrimSpace(values.Get("fromDate")); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"fromDate": raw,
				"error":    err.Error(),
			}).Warn("Ignoring unparseable fromDate")
		} else {
			q.Filter.FromDate = from
		}
	}
	return q
}

// parseSort reads "field:asc|desc". Anything but "desc" sorts ascending.
func parseSort(raw string) models.WallpaperSort {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.DefaultWallpaperSort
	}
	field, dir, _ := strings.Cut(raw, ":")
	return models.WallpaperSort{
		Field: strings.TrimSpace(field),
		Desc:  strings.EqualFold(strings.TrimSpace(dir), "desc"),
	}
}

// atoiOrZero returns 0 for anything that is not an integer; the service
// replaces non-positive values with defaults.
func atoiOrZero(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
