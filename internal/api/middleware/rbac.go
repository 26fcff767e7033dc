package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/cmsbridge/restapi/internal/core/domain"
)

// RequirePermission rejects requests whose principal lacks permission on
// the content loaded by LoadContent, or on the site when none was loaded.
func RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sec := Security(c)
			if sec == nil || !sec.CheckPermission(permission, Content(c)) {
				return domain.ErrUnauthorized
			}
			return next(c)
		}
	}
}
