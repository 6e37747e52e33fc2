package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/hospital-ms/portal/docs"
	"github.com/hospital-ms/portal/internal/api/handler"
	"github.com/hospital-ms/portal/internal/api/middleware"
	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/ports"
	"github.com/hospital-ms/portal/internal/core/service"
	"github.com/hospital-ms/portal/internal/infrastructure/http/handlers"
)

// RemoteAPI is the REST API as seen by the router: section data plus a
// reachability probe.
type RemoteAPI interface {
	Fetch(ctx context.Context, path string) (json.RawMessage, error)
	Ping(ctx context.Context) error
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Log      zerolog.Logger
	Client   middleware.ClientConfig
	Guard    middleware.Evaluator
	Sessions ports.SessionManager
	Auth     ports.Authenticator
	Menu     handler.MenuSource
	API      RemoteAPI

	// Optional backends reported by /health/ready.
	Mongo *mongo.Database
	Redis *redis.Client

	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	registerer := d.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "portal",
		Registerer: registerer,
	}))

	// --- Operational endpoints (no client context) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Mongo, d.Redis, d.API)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Portal ---
	portal := e.Group("", middleware.ClientContext(d.Client), middleware.RequestLogger(d.Log))

	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions, d.Log)
	menuHandler := handler.NewMenuHandler(d.Menu, d.Sessions)
	pageHandler := handler.NewPageHandler(d.API, d.Menu)

	portal.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, domain.PathDashboard)
	})
	portal.GET(domain.PathLogin, authHandler.LoginPage)
	portal.POST(domain.PathLogin, authHandler.Login)
	portal.GET(domain.PathRegister, authHandler.RegisterPage)
	portal.POST(domain.PathRegister, authHandler.Register)
	portal.POST("/logout", authHandler.Logout)
	portal.GET("/menu", menuHandler.Menu)

	for _, route := range domain.AllRoutes {
		portal.GET(route.Path(), pageHandler.Section(route), middleware.Guard(d.Guard, route))
	}

	// Linked from the navbar but absent from the policy table.
	portal.GET("/notifications", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, middleware.GuardPath(d.Guard))

	return e
}

var _ middleware.Evaluator = (*service.RouteGuard)(nil)
