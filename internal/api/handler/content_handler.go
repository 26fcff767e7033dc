package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cmsbridge/restapi/internal/api/metrics"
	"github.com/cmsbridge/restapi/internal/api/middleware"
	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/serializer"
)

type ContentHandler struct {
	serializer *serializer.ContentSerializer
	publicURL  string
}

func NewContentHandler(s *serializer.ContentSerializer, publicURL string) *ContentHandler {
	return &ContentHandler{serializer: s, publicURL: publicURL}
}

// Get serializes the traversed content item with its fields.
//
// @Summary      Read content
// @Tags         content
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /{path} [get]
func (h *ContentHandler) Get(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.SerializationDuration.WithLabelValues("content"))
	defer timer.ObserveDuration()

	content := middleware.Content(c)
	if content == nil {
		return domain.ErrContentNotFound
	}
	out, err := h.serializer.Serialize(c.Request().Context(), content, requestState(c, h.publicURL))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
