package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cmsbridge/restapi/internal/api/handler"
	"github.com/cmsbridge/restapi/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs configuration and unexpected errors with the request path.
//   - Renders a consistent JSON envelope: {"error": {"type", "message"}}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, handler.ErrorResponse{Error: body})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorBody) {
	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusBadRequest, handler.ErrorBody{Type: "Missing credentials", Message: "Login and password must be provided in body."}
	case errors.Is(err, domain.ErrInvalidParams):
		return http.StatusBadRequest, handler.ErrorBody{Type: "BadRequest", Message: "Parameters supplied are not valid"}
	case errors.Is(err, domain.ErrTooManyParams):
		return http.StatusBadRequest, handler.ErrorBody{Type: "BadRequest", Message: "Must supply exactly one parameter (user id)"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, handler.ErrorBody{Type: "Invalid credentials", Message: "Wrong login and/or password."}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, handler.ErrorBody{Type: "Unauthorized", Message: "You are not authorized to access this resource."}
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrContentNotFound),
		errors.Is(err, domain.ErrSlotNotFound):
		return http.StatusNotFound, handler.ErrorBody{Type: "NotFound", Message: err.Error()}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, handler.ErrorBody{Type: "Conflict", Message: err.Error()}
	case errors.Is(err, domain.ErrPluginNotInstalled), errors.Is(err, domain.ErrTokenNotCreated):
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg("authentication misconfigured")
		return http.StatusNotImplemented, handler.ErrorBody{Type: "Login failed", Message: err.Error()}
	}

	// Echo's own errors (router 404, 405, middleware rejections, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorBody{Type: http.StatusText(he.Code), Message: fmt.Sprintf("%v", he.Message)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorBody{Type: "InternalServerError", Message: "internal server error"}
}
