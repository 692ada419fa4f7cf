package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todovault/todo-service/internal/api/auth"
	"todovault/todo-service/internal/api/models"
	"todovault/todo-service/internal/api/repository"
	"todovault/todo-service/internal/api/response"
)

func newTodoFixture(t *testing.T) (TodoService, int64, int64) {
	t.Helper()

	conn := newTestDB(t)
	users := NewUserService(repository.NewUserRepository(conn), auth.NewTokenService("test-secret", 30*time.Minute))
	ctx := context.Background()

	alice, err := users.Register(ctx, registerReq("alice", "alice@example.com"))
	require.NoError(t, err)
	bob, err := users.Register(ctx, registerReq("bob", "bob@example.com"))
	require.NoError(t, err)

	return NewTodoService(repository.NewTodoRepository(conn)), alice.ID, bob.ID
}

func TestTodoService_CreateValidation(t *testing.T) {
	svc, aliceID, _ := newTodoFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.TodoRequest
	}{
		{name: "empty title", req: models.TodoRequest{Title: "", Priority: 3}},
		{name: "priority too low", req: models.TodoRequest{Title: "x", Priority: 0}},
		{name: "priority too high", req: models.TodoRequest{Title: "x", Priority: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, aliceID, &tt.req)
			require.Error(t, err)

			var verrs validator.ValidationErrors
			assert.True(t, errors.As(err, &verrs), "validation must fail before persistence")
		})
	}
}

func TestTodoService_CrudRoundTrip(t *testing.T) {
	svc, aliceID, _ := newTodoFixture(t)
	ctx := context.Background()

	desc := "with description"
	created, err := svc.Create(ctx, aliceID, &models.TodoRequest{
		Title:       "first todo",
		Description: &desc,
		Priority:    2,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(ctx, aliceID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Priority, got.Priority)

	updated, err := svc.Update(ctx, aliceID, created.ID, &models.TodoRequest{
		Title:     "first todo, done",
		Priority:  4,
		Completed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "first todo, done", updated.Title)
	assert.True(t, updated.Completed)
	assert.Nil(t, updated.Description, "update is a full replace")

	require.NoError(t, svc.Delete(ctx, aliceID, created.ID))

	_, err = svc.Get(ctx, aliceID, created.ID)
	var appErr *response.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Status)
}

func TestTodoService_CrossOwnerIsNotFound(t *testing.T) {
	svc, aliceID, bobID := newTodoFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, aliceID, &models.TodoRequest{Title: "alice's todo", Priority: 1})
	require.NoError(t, err)

	var appErr *response.AppError

	_, err = svc.Get(ctx, bobID, created.ID)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Status, "someone else's todo must look missing, not forbidden")

	_, err = svc.Update(ctx, bobID, created.ID, &models.TodoRequest{Title: "hijack", Priority: 1})
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Status)

	err = svc.Delete(ctx, bobID, created.ID)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Status)

	// Alice's todo is untouched.
	got, err := svc.Get(ctx, aliceID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice's todo", got.Title)
}
