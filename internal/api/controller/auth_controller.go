package controller

import (
	"github.com/gin-gonic/gin"

	"todovault/todo-service/internal/api/models"
	"todovault/todo-service/internal/api/response"
	"todovault/todo-service/internal/api/service"
)

// AuthController handles registration and token issuance.
type AuthController struct {
	userService service.UserService
}

// NewAuthController creates a new AuthController.
func NewAuthController(userService service.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// Register handles the user registration endpoint.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := ac.userService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, models.NewUserResponse(user, "User created successfully"))
}

// Token handles the login endpoint. Credentials arrive form-encoded and a
// bearer access token goes back.
func (ac *AuthController) Token(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	token, err := ac.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
