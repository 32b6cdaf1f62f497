package handlers

import (
	"net/http"

	"github.com/Dias221467/Wallpaper_Hub/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterConfig carries everything NewRouter wires into the HTTP surface.
type RouterConfig struct {
	Users       *UserHandler
	Wallpapers  *WallpaperHandler
	Health      *HealthHandler
	JWTSecret   string
	CORSOrigins []string
	// UploadDir is served under /uploads/ when set.
	UploadDir string
}

// NewRouter builds the full handler chain: recover, logging, CORS, then the
// routes with auth applied to the protected subrouters.
func NewRouter(cfg RouterConfig) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	router.Use(middleware.LoggingMiddleware)

	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)

	router.HandleFunc("/health", cfg.Health.HealthCheckHandler).Methods("GET")

	// Public auth routes
	router.HandleFunc("/api/auth/register", cfg.Users.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/api/auth/login", cfg.Users.LoginUserHandler).Methods("POST")

	// Protected auth routes
	meRouter := router.PathPrefix("/api/auth/me").Subrouter()
	meRouter.Use(authMiddleware)
	meRouter.HandleFunc("", cfg.Users.GetMeHandler).Methods("GET")

	// Public wallpaper routes; /popular must precede /{id}
	router.HandleFunc("/api/wallpapers", cfg.Wallpapers.ListWallpapersHandler).Methods("GET")
	router.HandleFunc("/api/wallpapers/popular", cfg.Wallpapers.GetPopularWallpapersHandler).Methods("GET")
	router.HandleFunc("/api/wallpapers/{id}", cfg.Wallpapers.GetWallpaperHandler).Methods("GET")
	router.HandleFunc("/api/wallpapers/{id}/download", cfg.Wallpapers.DownloadWallpaperHandler).Methods("GET")

	// Protected wallpaper routes
	wallpaperRouter := router.PathPrefix("/api/wallpapers").Subrouter()
	wallpaperRouter.Use(authMiddleware)
	wallpaperRouter.HandleFunc("", cfg.Wallpapers.UploadWallpaperHandler).Methods("POST")
	wallpaperRouter.HandleFunc("/{id}/favorite", cfg.Wallpapers.AddFavoriteHandler).Methods("POST")

	if cfg.UploadDir != "" {
		router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return middleware.RecoverMiddleware(c.Handler(router))
}
