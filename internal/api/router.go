package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskforge/taskmanager-api/docs"
	"github.com/taskforge/taskmanager-api/internal/api/handler"
	"github.com/taskforge/taskmanager-api/internal/api/middleware"
	"github.com/taskforge/taskmanager-api/internal/core/service"
	mongostore "github.com/taskforge/taskmanager-api/internal/infrastructure/db/mongo"
	redisstore "github.com/taskforge/taskmanager-api/internal/infrastructure/db/redis"
)

const tokenTTL = 7 * 24 * time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	// Mirror the browser client's cross-origin setup: reflect the caller's
	// origin so credentialed requests work from any frontend deployment.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOriginFunc:  func(string) (bool, error) { return true, nil },
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("taskmanager"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	taskRepo := mongostore.NewTaskRepository(db)
	limiter := redisstore.NewLoginLimiter(rdb)

	authService := service.NewAuthService(userRepo, limiter, jwtSecret, tokenTTL, log)
	taskService := service.NewTaskService(taskRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	authMiddleware := middleware.Auth(jwtSecret)

	// --- Public routes ---
	api := e.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// --- Protected routes ---
	protected := api.Group("", authMiddleware)
	protected.GET("/me", authHandler.Me)
	protected.GET("/tasks", taskHandler.List)
	protected.POST("/tasks", taskHandler.Create)
	protected.PUT("/tasks/:id", taskHandler.Update)
	protected.DELETE("/tasks/:id", taskHandler.Delete)
	protected.PATCH("/tasks/:id/toggle", taskHandler.Toggle)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
