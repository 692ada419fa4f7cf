package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"todovault/todo-service/internal/api/middleware"
	"todovault/todo-service/internal/api/models"
	"todovault/todo-service/internal/api/response"
	"todovault/todo-service/internal/api/service"
)

// TodoController handles the owner-scoped todo CRUD endpoints.
type TodoController struct {
	todoService service.TodoService
}

// NewTodoController creates a new TodoController.
func NewTodoController(todoService service.TodoService) *TodoController {
	return &TodoController{todoService: todoService}
}

// List returns all todos belonging to the caller.
func (tc *TodoController) List(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, response.NewAuthentication("Not authenticated"))
		return
	}

	todos, err := tc.todoService.List(c.Request.Context(), principal.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, todos)
}

// Get returns a single todo belonging to the caller.
func (tc *TodoController) Get(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, response.NewAuthentication("Not authenticated"))
		return
	}

	id, err := todoID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	todo, err := tc.todoService.Get(c.Request.Context(), principal.ID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, todo)
}

// Create validates and persists a new todo for the caller.
func (tc *TodoController) Create(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, response.NewAuthentication("Not authenticated"))
		return
	}

	var req models.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	todo, err := tc.todoService.Create(c.Request.Context(), principal.ID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, todo)
}

// Update fully replaces the mutable fields of one of the caller's todos.
func (tc *TodoController) Update(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, response.NewAuthentication("Not authenticated"))
		return
	}

	id, err := todoID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	todo, err := tc.todoService.Update(c.Request.Context(), principal.ID, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, todo)
}

// Delete removes one of the caller's todos.
func (tc *TodoController) Delete(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, response.NewAuthentication("Not authenticated"))
		return
	}

	id, err := todoID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := tc.todoService.Delete(c.Request.Context(), principal.ID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// todoID parses the :id path parameter; it must be a positive integer.
func todoID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.NewAppError(422, "VALIDATION_ERROR",
			"Todo id must be a positive integer",
			map[string]any{"field": "id"})
	}
	return id, nil
}
