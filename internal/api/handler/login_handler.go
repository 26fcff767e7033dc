package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cmsbridge/restapi/internal/api/metrics"
	"github.com/cmsbridge/restapi/internal/api/middleware"
	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// LoginServiceID is the path segment of the login endpoint.
const LoginServiceID = "@login"

// CookieOptions controls the auth cookie set after a successful login. An
// empty Name disables the cookie.
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type LoginHandler struct {
	loginService ports.LoginService
	cookie       CookieOptions
}

func NewLoginHandler(loginService ports.LoginService, cookie CookieOptions) *LoginHandler {
	return &LoginHandler{loginService: loginService, cookie: cookie}
}

// loginRequest fields are pointers: only an absent key counts as missing,
// an empty value still goes through authentication.
type loginRequest struct {
	Login    *string `json:"login" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates against the user folder nearest to the request
// location and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      501   {object}  ErrorResponse
// @Router       /@login [post]
func (h *LoginHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("missing_credentials").Inc()
		return domain.ErrMissingCredentials
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("missing_credentials").Inc()
		return domain.ErrMissingCredentials
	}

	token, err := h.loginService.Login(c.Request().Context(), ports.LoginInput{
		Login:    *req.Login,
		Password: *req.Password,
		Request:  domain.NewAuthRequest(middleware.Location(c)),
	})
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	if h.cookie.Name != "" {
		c.SetCookie(&http.Cookie{
			Name:     h.cookie.Name,
			Value:    token,
			Path:     "/",
			MaxAge:   int(h.cookie.TTL.Seconds()),
			HttpOnly: true,
			Secure:   h.cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrPluginNotInstalled), errors.Is(err, domain.ErrTokenNotCreated):
		return "misconfigured"
	default:
		return "error"
	}
}
