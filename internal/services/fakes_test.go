package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Dias221467/Wallpaper_Hub/internal/models"
	"github.com/Dias221467/Wallpaper_Hub/internal/repository"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var pngImage = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// fakeWallpaperStore is an in-memory WallpaperStore with the same filter,
// sort and atomic update semantics as the MongoDB repository.
type fakeWallpaperStore struct {
	mu        sync.Mutex
	items     map[primitive.ObjectID]*models.Wallpaper
	createErr error
	clock     time.Time
	lastSkip  int64
}

func newFakeWallpaperStore() *fakeWallpaperStore {
	return &fakeWallpaperStore{
		items: make(map[primitive.ObjectID]*models.Wallpaper),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// seed inserts w as-is, keeping its counters and timestamp.
func (f *fakeWallpaperStore) seed(w models.Wallpaper) models.Wallpaper {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	if w.CreatedAt.IsZero() {
		f.clock = f.clock.Add(time.Minute)
		w.CreatedAt = f.clock
	}
	if w.Favorites == nil {
		w.Favorites = []primitive.ObjectID{}
	}
	w.FavoriteCount = len(w.Favorites)
	f.items[w.ID] = &w
	return w
}

func (f *fakeWallpaperStore) get(id primitive.ObjectID) models.Wallpaper {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.items[id]
}

func (f *fakeWallpaperStore) CreateWallpaper(ctx context.Context, w *models.Wallpaper) (*models.Wallpaper, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	w.Favorites = []primitive.ObjectID{}
	w.FavoriteCount = 0
	w.DownloadCount = 0
	w.CreatedAt = time.Time{}
	created := f.seed(*w)
	return &created, nil
}

func (f *fakeWallpaperStore) GetWallpaperByID(ctx context.Context, id primitive.ObjectID) (*models.Wallpaper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *w
	return &c, nil
}

func (f *fakeWallpaperStore) matching(filter models.WallpaperFilter) []models.Wallpaper {
	var out []models.Wallpaper
	for _, w := range f.items {
		if filter.Category != "" && w.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(w.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if !filter.FromDate.IsZero() && w.CreatedAt.Before(filter.FromDate) {
			continue
		}
		out = append(out, *w)
	}
	return out
}

func less(a, b models.Wallpaper, field string) bool {
	switch field {
	case models.SortTitle:
		return a.Title < b.Title
	case models.SortCategory:
		return a.Category < b.Category
	case models.SortDownloadCount:
		return a.DownloadCount < b.DownloadCount
	case models.SortFavorites:
		return a.FavoriteCount < b.FavoriteCount
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func (f *fakeWallpaperStore) FindWallpapers(ctx context.Context, filter models.WallpaperFilter, s models.WallpaperSort, skip, limit int64) ([]models.Wallpaper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSkip = skip
	out := f.matching(filter)
	sort.SliceStable(out, func(i, j int) bool {
		if s.Desc {
			return less(out[j], out[i], s.Field)
		}
		return less(out[i], out[j], s.Field)
	})
	if skip >= int64(len(out)) {
		return []models.Wallpaper{}, nil
	}
	out = out[skip:]
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeWallpaperStore) CountWallpapers(ctx context.Context, filter models.WallpaperFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.matching(filter))), nil
}

func (f *fakeWallpaperStore) GetPopularWallpapers(ctx context.Context, limit int64) ([]models.Wallpaper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.matching(models.WallpaperFilter{})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DownloadCount != out[j].DownloadCount {
			return out[i].DownloadCount > out[j].DownloadCount
		}
		return out[i].FavoriteCount > out[j].FavoriteCount
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeWallpaperStore) AddFavorite(ctx context.Context, wallpaperID, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.items[wallpaperID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, id := range w.Favorites {
		if id == userID {
			return repository.ErrAlreadyFavorited
		}
	}
	w.Favorites = append(w.Favorites, userID)
	w.FavoriteCount++
	return nil
}

func (f *fakeWallpaperStore) IncrementDownloads(ctx context.Context, id primitive.ObjectID) (*models.Wallpaper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w.DownloadCount++
	c := *w
	return &c, nil
}

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	mu      sync.Mutex
	byID    map[primitive.ObjectID]*models.User
	findErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) add(username string) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := models.User{ID: primitive.NewObjectID(), Username: username, Email: username + "@example.com"}
	f.byID[u.ID] = &u
	return u
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == user.Email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	c := *user
	f.byID[user.ID] = &c
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUserStore) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) Store(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
