package serializer

import (
	"context"
	"fmt"

	"github.com/mitchellh/copystructure"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/jsoncompat"
	"github.com/cmsbridge/restapi/internal/core/ports"
	"github.com/cmsbridge/restapi/internal/core/transform"
)

// SlotsServiceID is the path segment of the slots endpoint.
const SlotsServiceID = "@slots"

// SlotSerializer renders one persistent slot.
type SlotSerializer struct {
	pipeline *transform.Pipeline
}

func NewSlotSerializer(pipeline *transform.Pipeline) *SlotSerializer {
	return &SlotSerializer{pipeline: pipeline}
}

// Serialize returns {"@id", "slot_blocks", "slot_blocks_layout"} for slot,
// addressed as name under content.
func (s *SlotSerializer) Serialize(ctx context.Context, content *domain.Content, slot domain.Slot, name string, req *ports.Request) (map[string]any, error) {
	blocks, err := s.pipeline.Transform(ctx, slot.Blocks, content, req)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", name, err)
	}
	layout, err := copyLayout(slot.BlocksLayout)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", name, err)
	}
	return map[string]any{
		"@id":                fmt.Sprintf("%s/%s/%s", req.AbsoluteURL(content.Path), SlotsServiceID, name),
		"slot_blocks":        blocks,
		"slot_blocks_layout": layout,
	}, nil
}

func copyLayout(layout map[string]any) (map[string]any, error) {
	if layout == nil {
		return map[string]any{}, nil
	}
	copied, err := copystructure.Copy(layout)
	if err != nil {
		return nil, fmt.Errorf("copy layout: %w", err)
	}
	return jsoncompat.Mapping(copied.(map[string]any))
}

// SlotsSerializer renders every slot of a content item in storage order.
type SlotsSerializer struct {
	slot *SlotSerializer
}

func NewSlotsSerializer(slot *SlotSerializer) *SlotsSerializer {
	return &SlotsSerializer{slot: slot}
}

func (s *SlotsSerializer) Serialize(ctx context.Context, content *domain.Content, req *ports.Request) ([]map[string]any, error) {
	result := make([]map[string]any, 0, len(content.Slots))
	for _, slot := range content.Slots {
		out, err := s.slot.Serialize(ctx, content, slot, slot.Name, req)
		if err != nil {
			return nil, err
		}
		result = append(result, out)
	}
	return result, nil
}
