package response

import (
	"errors"
	"path/filepath"
	"testing"

	"todovault/todo-service/internal/api/repository"
	"todovault/todo-service/internal/db"
)

func TestMap_Table(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "app error passes through",
			err:        NewUsernameExists("alice"),
			wantStatus: 409,
			wantCode:   "USERNAME_ALREADY_EXISTS",
		},
		{
			name:       "http exception passes through",
			err:        NewHTTPError(404, "Todo item not found"),
			wantStatus: 404,
			wantCode:   "HTTP_EXCEPTION",
		},
		{
			name:       "duplicate username constraint",
			err:        &repository.DBError{Op: "create user", Err: errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)")},
			wantStatus: 409,
			wantCode:   "USERNAME_ALREADY_EXISTS",
		},
		{
			name:       "duplicate email constraint",
			err:        &repository.DBError{Op: "create user", Err: errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")},
			wantStatus: 409,
			wantCode:   "EMAIL_ALREADY_EXISTS",
		},
		{
			name:       "other unique constraint",
			err:        &repository.DBError{Op: "create tag", Err: errors.New("constraint failed: UNIQUE constraint failed: tags.name (2067)")},
			wantStatus: 409,
			wantCode:   "DUPLICATE_RECORD",
		},
		{
			name:       "not null constraint",
			err:        &repository.DBError{Op: "create todo", Err: errors.New("constraint failed: NOT NULL constraint failed: todos.title (1299)")},
			wantStatus: 422,
			wantCode:   "REQUIRED_FIELD_MISSING",
		},
		{
			name:       "other constraint",
			err:        &repository.DBError{Op: "create todo", Err: errors.New("constraint failed: CHECK constraint failed: priority (275)")},
			wantStatus: 400,
			wantCode:   "CONSTRAINT_VIOLATION",
		},
		{
			name:       "generic database failure",
			err:        &repository.DBError{Op: "list todos", Err: errors.New("database is locked")},
			wantStatus: 500,
			wantCode:   "DATABASE_ERROR",
		},
		{
			name:       "anything else",
			err:        errors.New("boom"),
			wantStatus: 500,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Map(tt.err)
			if env.StatusCode != tt.wantStatus {
				t.Errorf("Map() status = %d, want %d", env.StatusCode, tt.wantStatus)
			}
			if env.ErrorCode != tt.wantCode {
				t.Errorf("Map() code = %s, want %s", env.ErrorCode, tt.wantCode)
			}
			if !env.Error {
				t.Error("Map() envelope must always set error=true")
			}
		})
	}
}

func TestMap_NotNullFieldContext(t *testing.T) {
	err := &repository.DBError{
		Op:  "create todo",
		Err: errors.New("constraint failed: NOT NULL constraint failed: todos.title (1299)"),
	}

	env := Map(err)
	if env.Context["field"] != "title" {
		t.Errorf("Expected context.field 'title', got %v", env.Context["field"])
	}
	if env.Message != "Field 'title' is required and cannot be null" {
		t.Errorf("Unexpected message: %s", env.Message)
	}
}

// TestMap_RealEngineErrors verifies the mapper against errors the actual
// engine produces, not just hand-written strings.
func TestMap_RealEngineErrors(t *testing.T) {
	conn, err := db.Connect(filepath.Join(t.TempDir(), "mapper_test.db"))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer conn.Close()
	if err := db.Initialize(conn); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	_, err = conn.Exec(`INSERT INTO users (username, email, first_name, last_name, password_hash) VALUES ('a', 'a@b.c', 'A', 'B', 'x')`)
	if err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}

	t.Run("unique username", func(t *testing.T) {
		_, err := conn.Exec(`INSERT INTO users (username, email, first_name, last_name, password_hash) VALUES ('a', 'other@b.c', 'A', 'B', 'x')`)
		if err == nil {
			t.Fatal("expected duplicate insert to fail")
		}
		env := Map(&repository.DBError{Op: "create user", Err: err})
		if env.ErrorCode != "USERNAME_ALREADY_EXISTS" || env.StatusCode != 409 {
			t.Errorf("got %s/%d from %q", env.ErrorCode, env.StatusCode, err)
		}
	})

	t.Run("not null title", func(t *testing.T) {
		_, err := conn.Exec(`INSERT INTO todos (title, priority, owner_id) VALUES (NULL, 1, 1)`)
		if err == nil {
			t.Fatal("expected null insert to fail")
		}
		env := Map(&repository.DBError{Op: "create todo", Err: err})
		if env.ErrorCode != "REQUIRED_FIELD_MISSING" || env.StatusCode != 422 {
			t.Errorf("got %s/%d from %q", env.ErrorCode, env.StatusCode, err)
		}
		if env.Context["field"] != "title" {
			t.Errorf("expected context.field 'title', got %v (error was %q)", env.Context["field"], err)
		}
	})
}
