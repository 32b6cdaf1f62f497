package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Dias221467/Wallpaper_Hub/internal/models"
	"github.com/Dias221467/Wallpaper_Hub/internal/services"
	jwtutil "github.com/Dias221467/Wallpaper_Hub/pkg/jwt"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testUserID = "6650f1c2a1b2c3d4e5f60718"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) RegisterUser(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*services.AuthResult)
	return res, args.Error(1)
}

func (m *mockUserService) AuthenticateUser(ctx context.Context, email, password string) (*services.AuthResult, error) {
	args := m.Called(ctx, email, password)
	res, _ := args.Get(0).(*services.AuthResult)
	return res, args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type mockWallpaperService struct {
	mock.Mock
}

func (m *mockWallpaperService) ListWallpapers(ctx context.Context, q services.ListQuery) (*services.ListResult, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).(*services.ListResult)
	return res, args.Error(1)
}

func (m *mockWallpaperService) GetPopularWallpapers(ctx context.Context, limit int) ([]models.WallpaperView, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]models.WallpaperView)
	return items, args.Error(1)
}

func (m *mockWallpaperService) GetWallpaper(ctx context.Context, id string) (*models.WallpaperView, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*models.WallpaperView)
	return w, args.Error(1)
}

func (m *mockWallpaperService) UploadWallpaper(ctx context.Context, in services.UploadInput) (*models.WallpaperView, error) {
	args := m.Called(ctx, in)
	w, _ := args.Get(0).(*models.WallpaperView)
	return w, args.Error(1)
}

func (m *mockWallpaperService) AddFavorite(ctx context.Context, wallpaperID, userID string) error {
	args := m.Called(ctx, wallpaperID, userID)
	return args.Error(0)
}

func (m *mockWallpaperService) RecordDownload(ctx context.Context, wallpaperID string) (string, error) {
	args := m.Called(ctx, wallpaperID)
	return args.String(0), args.Error(1)
}

type testServer struct {
	users      *mockUserService
	wallpapers *mockWallpaperService
	pingErr    error
	handler    http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		users:      new(mockUserService),
		wallpapers: new(mockWallpaperService),
	}
	ts.handler = NewRouter(RouterConfig{
		Users:      NewUserHandler(ts.users),
		Wallpapers: NewWallpaperHandler(ts.wallpapers, 1<<20),
		Health: NewHealthHandler(func(ctx context.Context) error {
			return ts.pingErr
		}),
		JWTSecret:   testSecret,
		CORSOrigins: []string{"*"},
	})
	t.Cleanup(func() {
		ts.users.AssertExpectations(t)
		ts.wallpapers.AssertExpectations(t)
	})
	return ts
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := jwtutil.GenerateToken(testUserID, "alice", testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}
