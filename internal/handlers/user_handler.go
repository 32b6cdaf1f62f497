package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Dias221467/Wallpaper_Hub/internal/apperrors"
	"github.com/Dias221467/Wallpaper_Hub/internal/models"
	"github.com/Dias221467/Wallpaper_Hub/internal/services"
	"github.com/Dias221467/Wallpaper_Hub/pkg/logger"
	"github.com/Dias221467/Wallpaper_Hub/pkg/middleware"
)

// UserService is what UserHandler needs from the user service.
type UserService interface {
	RegisterUser(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	AuthenticateUser(ctx context.Context, email, password string) (*services.AuthResult, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// UserHandler handles HTTP requests related to authentication.
type UserHandler struct {
	Service UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// RegisterUserHandler handles user registration.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		logger.Log.WithError(err).Warn("Failed to decode user registration request")
		writeError(w, r, apperrors.BadRequest("Invalid request payload"))
		return
	}
	defer r.Body.Close()

	result, err := h.Service.RegisterUser(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}

// LoginUserHandler handles user login.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		logger.Log.WithError(err).Warn("Failed to decode login request")
		writeError(w, r, apperrors.BadRequest("Invalid request payload"))
		return
	}
	defer r.Body.Close()

	result, err := h.Service.AuthenticateUser(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}

// GetMeHandler returns the authenticated user.
func (h *UserHandler) GetMeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, r, apperrors.Unauthorized("Not authorized"))
		return
	}

	user, err := h.Service.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    user,
	})
}
