package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cmsbridge/restapi/internal/api/middleware"
)

// ContentService is the name under which the plain content view is
// registered; it answers paths without an @-segment.
const ContentService = ""

// Service is an endpoint reached by appending "@name" to a content path.
type Service struct {
	Name    string
	Method  string
	Handler echo.HandlerFunc
	// Middleware runs after traversal, innermost last.
	Middleware []echo.MiddlewareFunc
	// CSRFExempt skips anti-forgery checks for this service.
	CSRFExempt bool
}

// Traverser splits request paths into a content location, a service name
// and the positional parameters that follow it, and dispatches to the
// registered service.
type Traverser struct {
	services map[string]map[string]echo.HandlerFunc
	exempt   map[string]bool
}

func NewTraverser() *Traverser {
	return &Traverser{
		services: make(map[string]map[string]echo.HandlerFunc),
		exempt:   make(map[string]bool),
	}
}

// Register adds s. A later registration for the same name and method wins.
func (t *Traverser) Register(s Service) {
	h := s.Handler
	for i := len(s.Middleware) - 1; i >= 0; i-- {
		h = s.Middleware[i](h)
	}
	if t.services[s.Name] == nil {
		t.services[s.Name] = make(map[string]echo.HandlerFunc)
	}
	t.services[s.Name][s.Method] = h
	if s.CSRFExempt {
		t.exempt[s.Name] = true
	}
}

// Split returns the content location, service name and positional
// parameters of path. "/news/@users/jane" yields "/news", "@users", ["jane"].
func Split(path string) (location, service string, params []string) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "@") {
			return "/" + strings.Join(segments[:i], "/"), seg, nonEmpty(segments[i+1:])
		}
	}
	return "/" + strings.Join(segments, "/"), ContentService, nil
}

// CSRFExempt reports whether the service addressed by path opts out of
// anti-forgery checks.
func (t *Traverser) CSRFExempt(path string) bool {
	_, service, _ := Split(path)
	return t.exempt[service]
}

// Dispatch is the catch-all route handler.
func (t *Traverser) Dispatch(c echo.Context) error {
	location, service, params := Split(c.Request().URL.Path)

	methods, ok := t.services[service]
	if !ok {
		return echo.ErrNotFound
	}
	method := c.Request().Method
	if method == http.MethodHead {
		method = http.MethodGet
	}
	h, ok := methods[method]
	if !ok {
		return echo.ErrMethodNotAllowed
	}

	middleware.SetTraversal(c, location, params)
	return h(c)
}

func nonEmpty(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
