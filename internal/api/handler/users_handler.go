package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cmsbridge/restapi/internal/api/metrics"
	"github.com/cmsbridge/restapi/internal/api/middleware"
	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
	"github.com/cmsbridge/restapi/internal/core/serializer"
	"github.com/cmsbridge/restapi/internal/core/service"
)

// UsersHandler serves the user directory. The number of path segments after
// the service name selects the shape: none for a listing, one for a single
// user.
type UsersHandler struct {
	userService ports.UserService
	publicURL   string
}

func NewUsersHandler(userService ports.UserService, publicURL string) *UsersHandler {
	return &UsersHandler{userService: userService, publicURL: publicURL}
}

// Get lists, searches or fetches users.
//
// @Summary      Query the user directory
// @Tags         users
// @Produce      json
// @Param        query               query     string    false  "Id substring"
// @Param        search              query     string    false  "Login, full name or email substring"
// @Param        groups-filter:list  query     []string  false  "Keep members of these groups"  collectionFormat(multi)
// @Param        limit               query     int       false  "Raw search cap"  default(25)
// @Success      200  {array}   map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  "Unauthorized"
// @Failure      404  "Unknown user id"
// @Router       /@users [get]
// @Router       /@users/{id} [get]
func (h *UsersHandler) Get(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.SerializationDuration.WithLabelValues("users"))
	defer timer.ObserveDuration()

	req := requestState(c, h.publicURL)
	params := middleware.Params(c)
	query := c.QueryParams()

	switch {
	case len(params) == 0 && len(query) > 0:
		return h.search(c, req, query)
	case len(params) == 0:
		return h.enumerate(c, req)
	case len(params) == 1:
		return h.get(c, req, params[0])
	default:
		metrics.UserQueriesTotal.WithLabelValues("get", "invalid").Inc()
		return domain.ErrTooManyParams
	}
}

func (h *UsersHandler) search(c echo.Context, req *ports.Request, query url.Values) error {
	q, err := parseUserQuery(query)
	if err != nil {
		metrics.UserQueriesTotal.WithLabelValues("search", "invalid").Inc()
		return err
	}
	users, err := h.userService.Search(c.Request().Context(), req.Security, q)
	if err != nil {
		return h.fail(c, "search", err)
	}
	return h.list(c, req, "search", users)
}

func (h *UsersHandler) enumerate(c echo.Context, req *ports.Request) error {
	users, err := h.userService.Enumerate(c.Request().Context(), req.Security)
	if err != nil {
		return h.fail(c, "enumerate", err)
	}
	return h.list(c, req, "enumerate", users)
}

func (h *UsersHandler) get(c echo.Context, req *ports.Request, userID string) error {
	user, err := h.userService.Get(c.Request().Context(), req.Security, userID)
	if err != nil {
		return h.fail(c, "get", err)
	}
	out, err := serializer.UserSummary(user, req)
	if err != nil {
		return err
	}
	metrics.UserQueriesTotal.WithLabelValues("get", "ok").Inc()
	return c.JSON(http.StatusOK, out)
}

func (h *UsersHandler) list(c echo.Context, req *ports.Request, shape string, users []*domain.User) error {
	out, err := serializer.Users(users, req)
	if err != nil {
		return err
	}
	metrics.UserQueriesTotal.WithLabelValues(shape, "ok").Inc()
	return c.JSON(http.StatusOK, out)
}

// fail answers denied and unknown-user requests with a bare status code and
// leaves everything else to the central error handler.
func (h *UsersHandler) fail(c echo.Context, shape string, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		metrics.UserQueriesTotal.WithLabelValues(shape, "unauthorized").Inc()
		return c.NoContent(http.StatusUnauthorized)
	case errors.Is(err, domain.ErrUserNotFound):
		metrics.UserQueriesTotal.WithLabelValues(shape, "not_found").Inc()
		return c.NoContent(http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidParams):
		metrics.UserQueriesTotal.WithLabelValues(shape, "invalid").Inc()
	default:
		metrics.UserQueriesTotal.WithLabelValues(shape, "error").Inc()
	}
	return err
}

// parseUserQuery reads query, search, groups-filter and limit. Both the
// "groups-filter:list" and plain "groups-filter" keys are accepted.
func parseUserQuery(query url.Values) (ports.UserQuery, error) {
	q := ports.UserQuery{
		Query:  query.Get("query"),
		Search: query.Get("search"),
		Limit:  service.DefaultSearchResultsLimit,
	}
	q.GroupsFilter = append(q.GroupsFilter, query["groups-filter:list"]...)
	q.GroupsFilter = append(q.GroupsFilter, query["groups-filter"]...)

	if raw, ok := query["limit"]; ok && len(raw) > 0 {
		limit, err := strconv.Atoi(raw[0])
		if err != nil {
			return ports.UserQuery{}, domain.ErrInvalidParams
		}
		if limit < 0 {
			limit = 0
		}
		q.Limit = limit
	}
	return q, nil
}
