package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobtrackr/jobtracker-api/internal/api/handler"
	"github.com/jobtrackr/jobtracker-api/internal/api/middleware"
	"github.com/jobtrackr/jobtracker-api/internal/core/ports"
	"github.com/jobtrackr/jobtracker-api/internal/pkg/token"
)

// Deps carries everything the router needs. DB and Redis are only used by
// the readiness probe and may be nil in tests, which then skip that route.
type Deps struct {
	AuthService ports.AuthService
	JobService  ports.JobService
	Tokens      *token.Manager
	DB          *mongo.Database
	Redis       *redis.Client
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("jobtracker"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	jobHandler := handler.NewJobHandler(deps.JobService)
	authGate := middleware.Auth(deps.Tokens)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Job Tracker Server API is running")
	})

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// Account maintenance requires a token and only acts on the token's own id.
	users := e.Group("/auth/users", authGate, middleware.SelfOnly())
	users.PUT("/:id", authHandler.UpdateUser)
	users.DELETE("/:id", authHandler.DeleteUser)

	// --- Job routes (all behind the auth gate) ---
	jobs := e.Group("/api/jobs", authGate)
	jobs.POST("", jobHandler.Create)
	jobs.GET("", jobHandler.List)
	jobs.GET("/:id", jobHandler.Get)
	jobs.PUT("/:id", jobHandler.Update)
	jobs.DELETE("/:id", jobHandler.Delete)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	if deps.DB != nil && deps.Redis != nil {
		readiness := handler.NewReadinessHandler(deps.DB, deps.Redis)
		e.GET("/health/ready", readiness.Readiness)
	}

	return e
}
