package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/cmsbridge/restapi/internal/core/ports"
)

// LoadContent fetches the item at the traversed location. A missing item
// surfaces as domain.ErrContentNotFound.
func LoadContent(repo ports.ContentRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			content, err := repo.FindByPath(c.Request().Context(), Location(c))
			if err != nil {
				return err
			}
			c.Set(keyContent, content)
			return next(c)
		}
	}
}
