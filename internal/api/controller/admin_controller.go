package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"todovault/todo-service/internal/api/middleware"
	"todovault/todo-service/internal/api/models"
	"todovault/todo-service/internal/api/response"
	"todovault/todo-service/internal/api/service"
)

// AdminController handles the admin-only read endpoints plus the
// self-service endpoints for the authenticated user.
type AdminController struct {
	userService service.UserService
	todoService service.TodoService
}

// NewAdminController creates a new AdminController.
func NewAdminController(userService service.UserService, todoService service.TodoService) *AdminController {
	return &AdminController{userService: userService, todoService: todoService}
}

// ListUsers returns every user record. Admin only.
func (ac *AdminController) ListUsers(c *gin.Context) {
	users, err := ac.userService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, models.NewUserResponse(&users[i], ""))
	}
	response.OK(c, out)
}

// GetUser returns a single user record by id. Admin only.
func (ac *AdminController) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, response.NewAppError(422, "VALIDATION_ERROR",
			"User id must be a positive integer",
			map[string]any{"field": "id"}))
		return
	}

	user, err := ac.userService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, models.NewUserResponse(user, ""))
}

// ListTodos returns every todo regardless of owner. Admin only.
func (ac *AdminController) ListTodos(c *gin.Context) {
	todos, err := ac.todoService.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, todos)
}

// CurrentUser returns the authenticated caller's own record.
func (ac *AdminController) CurrentUser(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, response.NewAuthentication("Not authenticated"))
		return
	}

	user, err := ac.userService.Get(c.Request.Context(), principal.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, models.NewUserResponse(user, ""))
}

// ChangePassword replaces the caller's password after verifying the
// current one.
func (ac *AdminController) ChangePassword(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, response.NewAuthentication("Not authenticated"))
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := ac.userService.ChangePassword(c.Request.Context(), principal.ID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Password changed successfully"})
}
