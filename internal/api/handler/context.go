package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cmsbridge/restapi/internal/api/middleware"
	"github.com/cmsbridge/restapi/internal/core/ports"
	"github.com/cmsbridge/restapi/internal/core/security"
)

// requestState builds the per-request state handed to serializers and
// services. publicURL overrides the site root derived from the request,
// for deployments behind a proxy.
func requestState(c echo.Context, publicURL string) *ports.Request {
	base := publicURL
	if base == "" {
		base = c.Scheme() + "://" + c.Request().Host
	}
	return &ports.Request{
		BaseURL:  strings.TrimRight(base, "/"),
		Security: ctxSecurity(c),
	}
}

// ctxSecurity returns the security manager installed by the Auth
// middleware, falling back to the default policy for the principal.
func ctxSecurity(c echo.Context) ports.Security {
	if sec := middleware.Security(c); sec != nil {
		return sec
	}
	return security.NewManager(security.DefaultPolicy(), middleware.Principal(c))
}
