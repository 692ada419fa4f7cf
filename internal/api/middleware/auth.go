package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"todovault/todo-service/internal/api/auth"
	"todovault/todo-service/internal/api/repository"
	"todovault/todo-service/internal/api/response"
)

const (
	contextUserID   = "user_id"
	contextUsername = "username"
)

// Authenticate resolves the bearer token into a principal and stores it in
// the request context. Missing, malformed, expired or tampered tokens all
// abort with a 401 envelope.
func Authenticate(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, response.NewAuthentication("Not authenticated"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, response.NewAuthentication("Invalid authorization header"))
			return
		}

		principal, err := tokens.Resolve(parts[1])
		if err != nil {
			response.Error(c, response.NewAuthentication("Could not validate user"))
			return
		}

		c.Set(contextUserID, principal.ID)
		c.Set(contextUsername, principal.Username)
		c.Next()
	}
}

// RequireAdmin loads the principal's user record and aborts unless its role
// is admin. Runs after Authenticate.
func RequireAdmin(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			response.Error(c, response.NewAuthentication("Not authenticated"))
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), principal.ID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if user == nil {
			response.Error(c, response.NewHTTPError(404, "User not found"))
			return
		}
		if user.Role != "admin" {
			response.Error(c, response.NewAuthorization("Admin access required"))
			return
		}

		c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal stored by
// Authenticate.
func CurrentPrincipal(c *gin.Context) (auth.Principal, bool) {
	id, ok := c.Get(contextUserID)
	if !ok {
		return auth.Principal{}, false
	}
	userID, ok := id.(int64)
	if !ok {
		return auth.Principal{}, false
	}
	return auth.Principal{ID: userID, Username: c.GetString(contextUsername)}, true
}
