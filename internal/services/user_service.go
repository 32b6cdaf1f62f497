package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dias221467/Wallpaper_Hub/internal/apperrors"
	"github.com/Dias221467/Wallpaper_Hub/internal/models"
	"github.com/Dias221467/Wallpaper_Hub/internal/repository"
	"github.com/Dias221467/Wallpaper_Hub/internal/validation"
	jwtutil "github.com/Dias221467/Wallpaper_Hub/pkg/jwt"
	"github.com/Dias221467/Wallpaper_Hub/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var registerSchema = validation.NewSchema().
	Field("username", validation.Required("Username is required"), validation.MaxLen(30, "Username cannot be more than 30 characters")).
	Field("email", validation.Email("Please include a valid email")).
	Field("password", validation.MinLen(6, "Password must be at least 6 characters long"))

var loginSchema = validation.NewSchema().
	Field("email", validation.Email("Please include a valid email")).
	Field("password", validation.Required("Password is required"))

// RegisterInput is the payload of a registration request.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is a signed token together with the user it was issued for.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService encapsulates registration, login and token issuance.
type UserService struct {
	repo        UserStore
	jwtSecret   string
	tokenExpiry time.Duration
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore, jwtSecret string, tokenExpiry time.Duration) *UserService {
	return &UserService{
		repo:        repo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

// RegisterUser validates the input, stores the user with a bcrypt hash and
// returns a token for it.
func (s *UserService) RegisterUser(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := registerSchema.Validate(map[string]interface{}{
		"username": in.Username,
		"email":    in.Email,
		"password": in.Password,
	}); err != nil {
		logger.Log.Warn("Invalid registration payload")
		return nil, err
	}

	existing, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Dependency("Failed to register user", err)
	}
	if existing != nil {
		logger.Log.WithField("email", in.Email).Warn("Email already in use")
		return nil, apperrors.Conflict("User already exists")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, &models.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: string(hashedPwd),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, apperrors.Dependency("Failed to register user", err)
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Username, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("userID", user.ID.Hex()).Info("User registered successfully")
	return &AuthResult{Token: token, User: user}, nil
}

// AuthenticateUser verifies the email and password and issues a token.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := loginSchema.Validate(map[string]interface{}{
		"email":    email,
		"password": password,
	}); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Log.WithField("email", email).Warn("User not found")
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, apperrors.Dependency("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logger.Log.WithField("email", email).Warn("Invalid credentials")
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Username, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return &AuthResult{Token: token, User: user}, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Unauthorized("Not authorized")
	}

	user, err := s.repo.GetUserByID(ctx, objID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Dependency("Failed to get user", err)
	}
	return user, nil
}
