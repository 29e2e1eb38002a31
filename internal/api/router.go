package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/learnhub/learnhub-api/internal/api/handler"
	"github.com/learnhub/learnhub-api/internal/api/middleware"
	"github.com/learnhub/learnhub-api/internal/core/ports"
	"github.com/learnhub/learnhub-api/internal/core/service"
	"github.com/learnhub/learnhub-api/internal/core/token"
	"github.com/learnhub/learnhub-api/internal/infrastructure/config"
	mongodb "github.com/learnhub/learnhub-api/internal/infrastructure/db/mongo"
	redisdb "github.com/learnhub/learnhub-api/internal/infrastructure/db/redis"
	"github.com/learnhub/learnhub-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the session denylist and the Redis readiness check are then
// skipped and logout only clears the client cookie.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("learnhub"))

	// --- Dependencies ---
	codec := token.NewCodec(cfg.JWTSecret, 0)

	var denylist ports.SessionDenylist
	if rdb != nil {
		denylist = redisdb.NewSessionDenylist(rdb)
	}

	authRepo := mongodb.NewAuthRepository(db)
	courseRepo := mongodb.NewCourseRepository(db)
	enrollmentRepo := mongodb.NewEnrollmentRepository(db)

	authService := service.NewAuthService(authRepo, codec, log)
	courseService := service.NewCourseService(courseRepo, log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, log)

	authHandler := handler.NewAuthHandler(authService, codec, denylist, cfg.IsProduction())
	userHandler := handler.NewUserHandler(authService)
	courseHandler := handler.NewCourseHandler(courseService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)

	requireAuth := middleware.Auth(codec, denylist)
	requireAdmin := middleware.RequireRole("admin")

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, requireAuth)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Catalog routes ---
	e.GET("/courses", courseHandler.List)
	e.GET("/courses/:idOrSlug", courseHandler.Get)
	e.POST("/courses", courseHandler.Create, requireAuth, requireAdmin)
	e.PUT("/courses/:id", courseHandler.Update, requireAuth, requireAdmin)
	e.DELETE("/courses/:id", courseHandler.Delete, requireAuth, requireAdmin)

	// --- Enrollment routes ---
	e.POST("/enroll", enrollmentHandler.Enroll, requireAuth)
	e.GET("/enrollments/me", enrollmentHandler.ListMine, requireAuth)
	e.PUT("/enrollments/:id/progress", enrollmentHandler.SetProgress, requireAuth)

	// --- Admin routes ---
	e.GET("/users", userHandler.List, requireAuth, requireAdmin)

	// --- Observability (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
