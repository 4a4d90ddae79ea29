package user_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizforge/internal/auth"
	"github.com/saulo-duarte/quizforge/internal/config"
	"github.com/saulo-duarte/quizforge/internal/user"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := config.Connect(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}))
	return db
}

func newService(t *testing.T) (user.UserService, user.UserRepository) {
	t.Helper()
	auth.Init("user-service-test-secret")

	repo := user.NewRepository(newTestDB(t))
	return user.NewService(repo, bcrypt.MinCost), repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)

	u, token, err := svc.Register(ctx, user.CredentialsDTO{Username: "  ada ", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "ada", u.Username)
	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.Zero(t, u.CurrentStreak)
	assert.Nil(t, u.LastQuizDate)

	claims, err := auth.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, "ada", claims.Username)

	stored, err := repo.GetByUsername("ada")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, u.ID, stored.ID)

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, _, err := svc.Register(ctx, user.CredentialsDTO{Username: "ada", Password: "another1"})
		assert.ErrorIs(t, err, user.ErrUsernameTaken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	registered, _, err := svc.Register(ctx, user.CredentialsDTO{Username: "grace", Password: "hopper42"})
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		u, token, err := svc.Login(ctx, user.CredentialsDTO{Username: "grace", Password: "hopper42"})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, _, err := svc.Login(ctx, user.CredentialsDTO{Username: "grace", Password: "nope-nope"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, _, err := svc.Login(ctx, user.CredentialsDTO{Username: "nobody", Password: "hopper42"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	u, _, err := svc.Register(ctx, user.CredentialsDTO{Username: "linus", Password: "penguin1"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "linus", got.Username)

	_, err = svc.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
