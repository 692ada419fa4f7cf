package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"

	"todovault/todo-service/internal/api/models"
)

var tracer = otel.Tracer("repository.todo")

// TodoRepository defines the interface for todo data operations. Every
// read and mutation is scoped to an owner id; items belonging to someone
// else behave as if they do not exist.
type TodoRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]models.TodoItem, error)
	ListAll(ctx context.Context) ([]models.TodoItem, error)
	GetByID(ctx context.Context, ownerID, id int64) (*models.TodoItem, error)
	Create(ctx context.Context, todo *models.TodoItem) error
	Update(ctx context.Context, todo *models.TodoItem) error
	Delete(ctx context.Context, ownerID, id int64) error
}

type sqliteTodoRepository struct {
	db *sqlx.DB
}

// NewTodoRepository creates a new SQLite-based TodoRepository.
func NewTodoRepository(db *sqlx.DB) TodoRepository {
	return &sqliteTodoRepository{db: db}
}

// ListByOwner returns all todos belonging to the given owner.
func (r *sqliteTodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.TodoItem, error) {
	ctx, span := tracer.Start(ctx, "TodoRepository.ListByOwner")
	defer span.End()

	todos := []models.TodoItem{}
	err := r.db.SelectContext(ctx, &todos,
		`SELECT * FROM todos WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, wrapDB("list todos", err)
	}
	return todos, nil
}

// ListAll returns every todo regardless of owner. Admin read path only.
func (r *sqliteTodoRepository) ListAll(ctx context.Context) ([]models.TodoItem, error) {
	ctx, span := tracer.Start(ctx, "TodoRepository.ListAll")
	defer span.End()

	todos := []models.TodoItem{}
	if err := r.db.SelectContext(ctx, &todos, `SELECT * FROM todos ORDER BY id`); err != nil {
		return nil, wrapDB("list all todos", err)
	}
	return todos, nil
}

// GetByID retrieves a single todo scoped to its owner. A missing row, or
// one owned by another user, returns nil without error.
func (r *sqliteTodoRepository) GetByID(ctx context.Context, ownerID, id int64) (*models.TodoItem, error) {
	ctx, span := tracer.Start(ctx, "TodoRepository.GetByID")
	defer span.End()

	var todo models.TodoItem
	err := r.db.GetContext(ctx, &todo,
		`SELECT * FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDB("get todo", err)
	}
	return &todo, nil
}

// Create inserts a new todo and fills in its generated id.
func (r *sqliteTodoRepository) Create(ctx context.Context, todo *models.TodoItem) error {
	ctx, span := tracer.Start(ctx, "TodoRepository.Create")
	defer span.End()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO todos (title, description, priority, completed, owner_id)
		 VALUES (?, ?, ?, ?, ?)`,
		todo.Title, todo.Description, todo.Priority, todo.Completed, todo.OwnerID)
	if err != nil {
		return wrapDB("create todo", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return wrapDB("create todo", err)
	}
	todo.ID = id
	return nil
}

// Update replaces all mutable fields of an existing todo.
func (r *sqliteTodoRepository) Update(ctx context.Context, todo *models.TodoItem) error {
	ctx, span := tracer.Start(ctx, "TodoRepository.Update")
	defer span.End()

	_, err := r.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, priority = ?, completed = ?
		 WHERE id = ? AND owner_id = ?`,
		todo.Title, todo.Description, todo.Priority, todo.Completed,
		todo.ID, todo.OwnerID)
	if err != nil {
		return wrapDB("update todo", err)
	}
	return nil
}

// Delete removes a todo scoped to its owner.
func (r *sqliteTodoRepository) Delete(ctx context.Context, ownerID, id int64) error {
	ctx, span := tracer.Start(ctx, "TodoRepository.Delete")
	defer span.End()

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return wrapDB("delete todo", err)
	}
	return nil
}
