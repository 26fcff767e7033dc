package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	CSRFHeader = "X-CSRF-Token"
	CSRFCookie = "_csrf"
)

// CSRF applies double-submit cookie protection to unsafe requests. exempt
// reports paths whose service opts out, such as login.
func CSRF(exempt func(path string) bool) echo.MiddlewareFunc {
	return echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		Skipper: func(c echo.Context) bool {
			return exempt != nil && exempt(c.Request().URL.Path)
		},
		TokenLookup:    "header:" + CSRFHeader,
		CookieName:     CSRFCookie,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteStrictMode,
	})
}
