package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mobilepub/publisher-console/docs"
	"github.com/mobilepub/publisher-console/internal/api/handler"
	"github.com/mobilepub/publisher-console/internal/api/middleware"
	"github.com/mobilepub/publisher-console/internal/core/ports"
	"github.com/mobilepub/publisher-console/internal/i18n"
	"github.com/mobilepub/publisher-console/internal/infrastructure/http/handlers"
)

// Deps is everything the router wires into handlers and middleware.
type Deps struct {
	Sessions  ports.SessionService
	Store     ports.SessionStore
	StoreName string
	Localizer *i18n.Localizer
	Log       zerolog.Logger

	DemoEnabled    bool
	LoginPerMinute int
	LoginBurst     int

	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry, where the session metrics live.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "console",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	sessionHandler := handler.NewSessionHandler(d.Sessions, d.Localizer)
	consoleHandler := handler.NewConsoleHandler()
	requireSession := middleware.RequireSession(d.Sessions, d.Localizer)

	// --- Session routes ---
	s := e.Group("/session")
	s.GET("", sessionHandler.Get)
	s.POST("/google", sessionHandler.GoogleLogin)
	s.POST("/logout", sessionHandler.Logout)
	s.POST("/refresh", sessionHandler.Refresh)
	s.DELETE("/error", sessionHandler.ClearError)
	if d.DemoEnabled {
		limit := middleware.RateLimit(d.LoginPerMinute, d.LoginBurst, d.Localizer)
		s.POST("/demo", sessionHandler.CredentialLogin, limit)
		s.POST("/demo/start", sessionHandler.DemoLogin, limit)
	}

	// --- Console routes (logged-in users only) ---
	con := e.Group("/console", requireSession)
	con.GET("/sections", consoleHandler.Sections)
	con.GET("/sections/:section", consoleHandler.Section, middleware.SectionAccess(d.Localizer))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.StoreName, d.Store, d.Sessions)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
