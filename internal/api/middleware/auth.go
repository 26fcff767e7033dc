package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/security"
)

// TokenParser validates a token and returns the principal it was issued to.
type TokenParser interface {
	ParsePrincipal(token string) (domain.Principal, error)
}

// Auth resolves the requester from a bearer token or the auth cookie and
// binds it to policy. Requests without credentials continue as anonymous.
// An invalid bearer token is rejected, while an invalid cookie is ignored so
// a browser holding a stale cookie can still log in again.
func Auth(tokens TokenParser, policy *security.Policy, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := domain.Anonymous()

			token, fromCookie, err := credentials(c, cookieName)
			if err != nil {
				return err
			}
			if token != "" {
				p, err := tokens.ParsePrincipal(token)
				switch {
				case err == nil:
					principal = p
				case !fromCookie:
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
			}

			c.Set(keyPrincipal, principal)
			c.Set(keySecurity, security.NewManager(policy, principal))

			return next(c)
		}
	}
}

// credentials returns the raw token and whether it came from the cookie.
func credentials(c echo.Context, cookieName string) (token string, fromCookie bool, err error) {
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", false, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}
		return strings.TrimSpace(parts[1]), false, nil
	}
	if cookieName == "" {
		return "", false, nil
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie.Value, true, nil
	}
	return "", false, nil
}
