package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/todo-system/internal/api/handler"
	"github.com/taskboard/todo-system/internal/api/middleware"
	"github.com/taskboard/todo-system/internal/core/service"
	"github.com/taskboard/todo-system/internal/core/token"
	"github.com/taskboard/todo-system/internal/infrastructure/config"
	mongodb "github.com/taskboard/todo-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskboard/todo-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The activity recorder is constructed by the caller because its worker pool
// lifecycle belongs to main.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, recorder service.ActivityRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("todo"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	taskLock := redisdb.NewTaskLock(rdb)

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	identityService := service.NewIdentityService(userRepo, tokens, log)
	taskService := service.NewTaskService(taskRepo, userRepo, taskLock, recorder, log)
	activityService := service.NewActivityService(activityRepo, taskRepo, log)

	authHandler := handler.NewAuthHandler(identityService)
	taskHandler := handler.NewTaskHandler(taskService, activityService)
	authMiddleware := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Task routes (bearer token required) ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/tasks", taskHandler.List)
	v1.POST("/tasks", taskHandler.Create)
	v1.PUT("/tasks/:id", taskHandler.Update)
	v1.DELETE("/tasks/:id", taskHandler.Delete)
	v1.GET("/tasks/:id/activity", taskHandler.Activity)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
