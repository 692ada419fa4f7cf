package service

import (
	"context"

	"todovault/todo-service/internal/api/models"
	"todovault/todo-service/internal/api/repository"
	"todovault/todo-service/internal/api/response"
	"todovault/todo-service/internal/validator"
)

// TodoService defines the interface for todo business logic. All operations
// are scoped to the calling owner; an item outside the caller's ownership is
// treated as not found rather than forbidden.
type TodoService interface {
	List(ctx context.Context, ownerID int64) ([]models.TodoItem, error)
	ListAll(ctx context.Context) ([]models.TodoItem, error)
	Get(ctx context.Context, ownerID, id int64) (*models.TodoItem, error)
	Create(ctx context.Context, ownerID int64, req *models.TodoRequest) (*models.TodoItem, error)
	Update(ctx context.Context, ownerID, id int64, req *models.TodoRequest) (*models.TodoItem, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type todoService struct {
	todoRepo repository.TodoRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(todoRepo repository.TodoRepository) TodoService {
	return &todoService{todoRepo: todoRepo}
}

// List returns the caller's todos.
func (s *todoService) List(ctx context.Context, ownerID int64) ([]models.TodoItem, error) {
	return s.todoRepo.ListByOwner(ctx, ownerID)
}

// ListAll returns every todo in the system.
func (s *todoService) ListAll(ctx context.Context) ([]models.TodoItem, error) {
	return s.todoRepo.ListAll(ctx)
}

// Get returns one of the caller's todos.
func (s *todoService) Get(ctx context.Context, ownerID, id int64) (*models.TodoItem, error) {
	todo, err := s.todoRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, response.NewHTTPError(404, "Todo item not found")
	}
	return todo, nil
}

// Create validates the fields and persists a new todo for the caller.
func (s *todoService) Create(ctx context.Context, ownerID int64, req *models.TodoRequest) (*models.TodoItem, error) {
	if err := validator.GetValidator().Struct(req); err != nil {
		return nil, err
	}

	todo := &models.TodoItem{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   req.Completed,
		OwnerID:     ownerID,
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Update replaces all mutable fields of one of the caller's todos.
func (s *todoService) Update(ctx context.Context, ownerID, id int64, req *models.TodoRequest) (*models.TodoItem, error) {
	if err := validator.GetValidator().Struct(req); err != nil {
		return nil, err
	}

	todo, err := s.todoRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, response.NewHTTPError(404, "Todo item not found")
	}

	todo.Title = req.Title
	todo.Description = req.Description
	todo.Priority = req.Priority
	todo.Completed = req.Completed

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Delete removes one of the caller's todos.
func (s *todoService) Delete(ctx context.Context, ownerID, id int64) error {
	todo, err := s.todoRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if todo == nil {
		return response.NewHTTPError(404, "Todo item not found")
	}
	return s.todoRepo.Delete(ctx, ownerID, id)
}
