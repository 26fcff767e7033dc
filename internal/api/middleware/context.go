package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// Context keys shared by the middleware chain and the handlers.
const (
	keyPrincipal = "principal"
	keySecurity  = "security"
	keyLocation  = "location"
	keyParams    = "params"
	keyContent   = "content"
)

// SetTraversal stores the content location and the positional parameters
// consumed after the service segment.
func SetTraversal(c echo.Context, location string, params []string) {
	c.Set(keyLocation, domain.CleanPath(location))
	c.Set(keyParams, params)
}

// Location returns the content path the request was made against.
func Location(c echo.Context) string {
	if loc, ok := c.Get(keyLocation).(string); ok {
		return loc
	}
	return domain.CleanPath(c.Request().URL.Path)
}

func Params(c echo.Context) []string {
	params, _ := c.Get(keyParams).([]string)
	return params
}

// Principal returns the requester, anonymous when Auth did not run or found
// no credentials.
func Principal(c echo.Context) domain.Principal {
	if p, ok := c.Get(keyPrincipal).(domain.Principal); ok {
		return p
	}
	return domain.Anonymous()
}

// Security returns the permission checker bound to the requester, nil when
// Auth did not run.
func Security(c echo.Context) ports.Security {
	sec, _ := c.Get(keySecurity).(ports.Security)
	return sec
}

// Content returns the item loaded by LoadContent.
func Content(c echo.Context) *domain.Content {
	content, _ := c.Get(keyContent).(*domain.Content)
	return content
}
