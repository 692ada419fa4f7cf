package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todovault/todo-service/internal/api/auth"
	"todovault/todo-service/internal/api/models"
	"todovault/todo-service/internal/api/repository"
	"todovault/todo-service/internal/api/response"
	"todovault/todo-service/internal/db"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.Initialize(conn))
	return conn
}

func newUserService(t *testing.T) (UserService, *sqlx.DB, *auth.TokenService) {
	t.Helper()

	conn := newTestDB(t)
	tokens := auth.NewTokenService("test-secret", 30*time.Minute)
	return NewUserService(repository.NewUserRepository(conn), tokens), conn, tokens
}

func registerReq(username, email string) *models.RegisterRequest {
	return &models.RegisterRequest{
		Username:  username,
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Password:  "password123",
		Role:      "user",
	}
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, _, tokens := newUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("alice", "alice@example.com"))
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive)

	token, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	principal, err := tokens.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)
	assert.Equal(t, "alice", principal.Username)
}

func TestUserService_RegisterDuplicates(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, registerReq("alice", "other@example.com"))
		require.Error(t, err)

		var appErr *response.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 409, appErr.Status)
		assert.Equal(t, "USERNAME_ALREADY_EXISTS", appErr.Code)
	})

	t.Run("duplicate email different username", func(t *testing.T) {
		_, err := svc.Register(ctx, registerReq("bob", "alice@example.com"))
		require.Error(t, err)

		var appErr *response.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 409, appErr.Status)
		assert.Equal(t, "EMAIL_ALREADY_EXISTS", appErr.Code)
	})
}

func TestUserService_LoginFailures(t *testing.T) {
	svc, conn, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong-password")
		var appErr *response.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 401, appErr.Status)
		assert.Equal(t, "Invalid username or password", appErr.Message)
	})

	t.Run("unknown user matches wrong password message", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "password123")
		var appErr *response.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 401, appErr.Status)
		assert.Equal(t, "Invalid username or password", appErr.Message)
	})

	t.Run("disabled account gets its own message", func(t *testing.T) {
		_, err := conn.Exec(`UPDATE users SET is_active = 0 WHERE username = 'alice'`)
		require.NoError(t, err)

		_, err = svc.Login(ctx, "alice", "password123")
		var appErr *response.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 401, appErr.Status)
		assert.Equal(t, "Account is disabled", appErr.Message)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "wrong-password", "newpassword456")
		var appErr *response.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("success then login with new password", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, user.ID, "password123", "newpassword456"))

		_, err := svc.Login(ctx, "alice", "password123")
		assert.Error(t, err)

		_, err = svc.Login(ctx, "alice", "newpassword456")
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.ChangePassword(ctx, 9999, "password123", "newpassword456")
		var appErr *response.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 404, appErr.Status)
	})
}
