package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cmsbridge/restapi/internal/api/middleware"
	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
	"github.com/cmsbridge/restapi/internal/core/serializer"
	"github.com/cmsbridge/restapi/internal/core/transform"
)

type contentsByPath map[string]*domain.Content

func (s contentsByPath) FindByPath(_ context.Context, path string) (*domain.Content, error) {
	if c, ok := s[path]; ok {
		return c, nil
	}
	return nil, domain.ErrContentNotFound
}

func (s contentsByPath) FindByUID(context.Context, string) (*domain.Content, error) {
	return nil, domain.ErrContentNotFound
}

func newSlotsHandler() *SlotsHandler {
	reg := transform.NewRegistry()
	reg.Register(transform.Handler{
		Name:      "stamp",
		BlockType: transform.Wildcard,
		Transform: func(_ context.Context, b domain.Block, _ *domain.Content, _ *ports.Request) (domain.Block, error) {
			b["stamped"] = true
			return b, nil
		},
	})
	slot := serializer.NewSlotSerializer(transform.NewPipeline(reg))
	return NewSlotsHandler(serializer.NewSlotsSerializer(slot), slot, "http://cms.local")
}

func slotsContext(t *testing.T, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	content := &domain.Content{
		UID:         "n",
		Path:        "/news",
		ReviewState: domain.StatePublished,
		Slots: []domain.Slot{
			{Name: "left", Blocks: map[string]domain.Block{"b1": {"@type": "text"}}},
			{Name: "right", Blocks: map[string]domain.Block{}},
		},
	}
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/news/@slots", nil), rec)
	middleware.SetTraversal(c, "/news", params)

	// Run through LoadContent so the handler sees the item the way it does
	// in the router.
	load := middleware.LoadContent(contentsByPath{"/news": content})
	var loaded echo.Context
	if err := load(func(c echo.Context) error { loaded = c; return nil })(c); err != nil {
		t.Fatalf("load content: %v", err)
	}
	return loaded, rec
}

func TestSlotsHandler_All(t *testing.T) {
	c, rec := slotsContext(t)
	if err := newSlotsHandler().Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["@id"] != "http://cms.local/news/@slots/left" || resp[1]["@id"] != "http://cms.local/news/@slots/right" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	blocks := resp[0]["slot_blocks"].(map[string]any)
	if blocks["b1"].(map[string]any)["stamped"] != true {
		t.Fatalf("expected transformed block, got %+v", blocks)
	}
}

func TestSlotsHandler_One(t *testing.T) {
	c, rec := slotsContext(t, "right")
	if err := newSlotsHandler().Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["@id"] != "http://cms.local/news/@slots/right" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if layout, ok := resp["slot_blocks_layout"].(map[string]any); !ok || len(layout) != 0 {
		t.Fatalf("expected empty layout object, got %#v", resp["slot_blocks_layout"])
	}
}

func TestSlotsHandler_Unknown(t *testing.T) {
	c, _ := slotsContext(t, "footer")
	if err := newSlotsHandler().Get(c); !errors.Is(err, domain.ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}
