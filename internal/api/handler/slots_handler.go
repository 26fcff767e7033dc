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

// SlotsHandler serves the persistent slots of the traversed content item.
// It expects LoadContent to have run.
type SlotsHandler struct {
	slots     *serializer.SlotsSerializer
	slot      *serializer.SlotSerializer
	publicURL string
}

func NewSlotsHandler(slots *serializer.SlotsSerializer, slot *serializer.SlotSerializer, publicURL string) *SlotsHandler {
	return &SlotsHandler{slots: slots, slot: slot, publicURL: publicURL}
}

// Get returns every slot, or the one named by the path segment.
//
// @Summary      Read slots
// @Tags         slots
// @Produce      json
// @Param        name  path      string  false  "Slot name"
// @Success      200   {object}  map[string]interface{}
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /{path}/@slots [get]
// @Router       /{path}/@slots/{name} [get]
func (h *SlotsHandler) Get(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.SerializationDuration.WithLabelValues("slots"))
	defer timer.ObserveDuration()

	content := middleware.Content(c)
	if content == nil {
		return domain.ErrContentNotFound
	}
	req := requestState(c, h.publicURL)
	params := middleware.Params(c)

	switch len(params) {
	case 0:
		out, err := h.slots.Serialize(c.Request().Context(), content, req)
		if err != nil {
			return err
		}
		metrics.SlotsServedTotal.Add(float64(len(out)))
		return c.JSON(http.StatusOK, out)
	case 1:
		slot, ok := content.SlotByName(params[0])
		if !ok {
			return domain.ErrSlotNotFound
		}
		out, err := h.slot.Serialize(c.Request().Context(), content, *slot, params[0], req)
		if err != nil {
			return err
		}
		metrics.SlotsServedTotal.Inc()
		return c.JSON(http.StatusOK, out)
	default:
		return echo.ErrNotFound
	}
}
