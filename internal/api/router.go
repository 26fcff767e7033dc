package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cmsbridge/restapi/docs"
	"github.com/cmsbridge/restapi/internal/api/handler"
	"github.com/cmsbridge/restapi/internal/api/middleware"
	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
	"github.com/cmsbridge/restapi/internal/core/security"
	"github.com/cmsbridge/restapi/internal/core/serializer"
	"github.com/cmsbridge/restapi/internal/core/transform"
	"github.com/cmsbridge/restapi/internal/infrastructure/http/handlers"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Log zerolog.Logger

	LoginService ports.LoginService
	UserService  ports.UserService
	Contents     ports.ContentRepository
	Transforms   *transform.Registry

	Tokens middleware.TokenParser
	Policy *security.Policy
	Cookie handler.CookieOptions

	// PublicURL overrides the site root used in @id links.
	PublicURL   string
	CSRFEnabled bool

	// Readiness is optional; without it only the liveness probe is served.
	Readiness *handlers.HealthDependenciesHandler

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if d.Policy == nil {
		d.Policy = security.DefaultPolicy()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "cmsapi",
		Registerer: d.Registerer,
	}))

	// --- Serializers ---
	values := serializer.NewValueConverter(d.Contents)
	contentSerializer := serializer.NewContentSerializer(serializer.NewFieldRegistry(values))
	slotSerializer := serializer.NewSlotSerializer(transform.NewPipeline(d.Transforms))
	slotsSerializer := serializer.NewSlotsSerializer(slotSerializer)

	// --- Traversal services ---
	loadContent := middleware.LoadContent(d.Contents)
	canView := middleware.RequirePermission(domain.PermView)

	trav := NewTraverser()
	trav.Register(Service{
		Name:       handler.LoginServiceID,
		Method:     http.MethodPost,
		Handler:    handler.NewLoginHandler(d.LoginService, d.Cookie).Login,
		CSRFExempt: true,
	})
	trav.Register(Service{
		Name:    serializer.UsersServiceID,
		Method:  http.MethodGet,
		Handler: handler.NewUsersHandler(d.UserService, d.PublicURL).Get,
	})
	trav.Register(Service{
		Name:       serializer.SlotsServiceID,
		Method:     http.MethodGet,
		Handler:    handler.NewSlotsHandler(slotsSerializer, slotSerializer, d.PublicURL).Get,
		Middleware: []echo.MiddlewareFunc{loadContent, canView},
	})
	trav.Register(Service{
		Name:       ContentService,
		Method:     http.MethodGet,
		Handler:    handler.NewContentHandler(contentSerializer, d.PublicURL).Get,
		Middleware: []echo.MiddlewareFunc{loadContent, canView},
	})

	// --- Health probes (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness) // liveness  – is the process alive?
	if d.Readiness != nil {
		e.GET("/health/ready", d.Readiness.Readiness) // readiness – are dependencies up?
	}

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Content tree ---
	routeMiddleware := []echo.MiddlewareFunc{middleware.Auth(d.Tokens, d.Policy, d.Cookie.Name)}
	if d.CSRFEnabled {
		routeMiddleware = append(routeMiddleware, middleware.CSRF(trav.CSRFExempt))
	}
	e.Any("/*", trav.Dispatch, routeMiddleware...)

	return e
}
