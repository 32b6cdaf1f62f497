package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dias221467/Wallpaper_Hub/internal/apperrors"
	jwtutil "github.com/Dias221467/Wallpaper_Hub/pkg/jwt"
	"github.com/Dias221467/Wallpaper_Hub/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestUserService() (*UserService, *fakeUserStore) {
	repo := newFakeUserStore()
	return NewUserService(repo, "test-secret", time.Hour), repo
}

func TestRegisterUser(t *testing.T) {
	service, _ := newTestUserService()

	result, err := service.RegisterUser(context.Background(), RegisterInput{
		Username: "alice",
		Email:    " Alice@Example.com ",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.NotEqual(t, "hunter22", result.User.HashedPassword)

	claims, err := jwtutil.ValidateToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.Hex(), claims.UserID)
}

func TestRegisterUser_Duplicate(t *testing.T) {
	service, _ := newTestUserService()
	in := RegisterInput{Username: "alice", Email: "alice@example.com", Password: "hunter22"}

	_, err := service.RegisterUser(context.Background(), in)
	require.NoError(t, err)

	_, err = service.RegisterUser(context.Background(), in)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestAuthenticateUser_LogsThroughAppLogger(t *testing.T) {
	var buf bytes.Buffer
	out := logger.Log.Out
	logger.Log.SetOutput(&buf)
	t.Cleanup(func() { logger.Log.SetOutput(out) })

	service, _ := newTestUserService()
	_, err := service.AuthenticateUser(context.Background(), "ghost@example.com", "hunter22")
	require.Error(t, err)

	assert.Contains(t, buf.String(), "User not found")
	assert.Contains(t, buf.String(), "ghost@example.com")
}

func TestRegisterUser_Validation(t *testing.T) {
	service, _ := newTestUserService()

	_, err := service.RegisterUser(context.Background(), RegisterInput{Email: "nope", Password: "123"})

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Fields, 3)
}

func TestAuthenticateUser(t *testing.T) {
	service, _ := newTestUserService()
	_, err := service.RegisterUser(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	result, err := service.AuthenticateUser(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.User.Username)
}

func TestAuthenticateUser_WrongPassword(t *testing.T) {
	service, _ := newTestUserService()
	_, err := service.RegisterUser(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = service.AuthenticateUser(context.Background(), "alice@example.com", "wrong-password")
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
}

func TestAuthenticateUser_UnknownEmail(t *testing.T) {
	service, _ := newTestUserService()

	_, err := service.AuthenticateUser(context.Background(), "ghost@example.com", "whatever")
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
}

func TestAuthenticateUser_StoreDown(t *testing.T) {
	service, repo := newTestUserService()
	repo.findErr = errors.New("server selection timeout")

	_, err := service.AuthenticateUser(context.Background(), "alice@example.com", "hunter22")
	assert.Equal(t, apperrors.KindDependency, apperrors.KindOf(err))
}

func TestGetUser(t *testing.T) {
	service, repo := newTestUserService()
	u := repo.add("dave")

	user, err := service.GetUser(context.Background(), u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "dave", user.Username)

	_, err = service.GetUser(context.Background(), primitive.NewObjectID().Hex())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
