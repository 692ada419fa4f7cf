package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todovault/todo-service/internal/api/auth"
	"todovault/todo-service/internal/api/controller"
	"todovault/todo-service/internal/api/repository"
	"todovault/todo-service/internal/api/service"
	"todovault/todo-service/internal/config"
	"todovault/todo-service/internal/db"
	"todovault/todo-service/internal/logger"
	"todovault/todo-service/internal/server"
	"todovault/todo-service/internal/telemetry"

	"github.com/go-redis/redis/v8"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slogger := logger.Init(cfg.Env)

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	// Initialize SQLite DB
	conn, err := db.Connect(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.Initialize(conn); err != nil {
		log.Fatalf("failed to initialize sqlite schema: %v", err)
	}

	// Redis only backs the auth rate limiter; skip it when unconfigured.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = db.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("failed to initialize redis: %v", err)
		}
	}

	// Create repositories
	userRepo := repository.NewUserRepository(conn)
	todoRepo := repository.NewTodoRepository(conn)

	// Create services
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepo, tokens)
	todoService := service.NewTodoService(todoRepo)

	// Create controllers
	authController := controller.NewAuthController(userService)
	todoController := controller.NewTodoController(todoService)
	adminController := controller.NewAdminController(userService, todoService)

	// Create the Gin-based server
	srv := server.NewServer(server.Dependencies{
		Config:   cfg,
		Logger:   slogger,
		Tokens:   tokens,
		UserRepo: userRepo,
		Auth:     authController,
		Todos:    todoController,
		Admin:    adminController,
		Redis:    rdb,
	})

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("http server started on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
