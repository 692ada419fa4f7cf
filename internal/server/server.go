package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"todovault/todo-service/internal/api/auth"
	"todovault/todo-service/internal/api/controller"
	"todovault/todo-service/internal/api/middleware"
	"todovault/todo-service/internal/api/repository"
	"todovault/todo-service/internal/api/response"
	"todovault/todo-service/internal/config"
)

var tracer = otel.Tracer("server")

// Dependencies collects everything the HTTP surface needs.
type Dependencies struct {
	Config   *config.Config
	Logger   *slog.Logger
	Tokens   *auth.TokenService
	UserRepo repository.UserRepository
	Auth     *controller.AuthController
	Todos    *controller.TodoController
	Admin    *controller.AdminController
	Redis    *redis.Client
}

// Server owns the Gin engine and its route table.
type Server struct {
	engine *gin.Engine
}

// NewServer wires middleware and routes into a Gin engine.
func NewServer(deps Dependencies) *Server {
	if deps.Config.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(deps.Logger))
	engine.Use(middleware.CORS(deps.Config.AllowedOrigins))
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		response.Error(c, fmt.Errorf("panic recovered: %v", recovered))
	}))
	engine.Use(traceRequests())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := engine.Group("/auth")
	if deps.Redis != nil {
		authGroup.Use(middleware.RateLimit(deps.Redis, deps.Config.RateLimitPerMinute, middleware.RateLimitWindow))
	}
	authGroup.POST("/register", deps.Auth.Register)
	authGroup.POST("/token", deps.Auth.Token)

	todos := engine.Group("/todos")
	todos.Use(middleware.Authenticate(deps.Tokens))
	todos.GET("", deps.Todos.List)
	todos.POST("", deps.Todos.Create)
	todos.GET("/:id", deps.Todos.Get)
	todos.PUT("/:id", deps.Todos.Update)
	todos.DELETE("/:id", deps.Todos.Delete)

	admin := engine.Group("/admin")
	admin.Use(middleware.Authenticate(deps.Tokens))
	admin.GET("/user", deps.Admin.CurrentUser)
	admin.PUT("/user/change-password", deps.Admin.ChangePassword)

	adminOnly := admin.Group("")
	adminOnly.Use(middleware.RequireAdmin(deps.UserRepo))
	adminOnly.GET("/users", deps.Admin.ListUsers)
	adminOnly.GET("/users/:id", deps.Admin.GetUser)
	adminOnly.GET("/todos", deps.Admin.ListTodos)

	return &Server{engine: engine}
}

// Engine exposes the underlying Gin engine for the HTTP server and tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// traceRequests opens a span per request so repository spans nest under it.
func traceRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+c.FullPath(), trace.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.url", c.Request.URL.String()),
		))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	}
}
