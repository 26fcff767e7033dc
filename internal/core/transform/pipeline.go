package transform

import (
	"context"
	"fmt"
	"sort"

	"github.com/mitchellh/copystructure"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/jsoncompat"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// Pipeline applies the registry's handlers to every block of a slot.
type Pipeline struct {
	registry *Registry
}

func NewPipeline(registry *Registry) *Pipeline {
	return &Pipeline{registry: registry}
}

// Transform returns the transformed, JSON-compatible form of blocks. blocks
// itself is never modified. A failing handler aborts the whole transform.
func (p *Pipeline) Transform(ctx context.Context, blocks map[string]domain.Block, content *domain.Content, req *ports.Request) (map[string]any, error) {
	if blocks == nil {
		return map[string]any{}, nil
	}
	copied, err := copystructure.Copy(blocks)
	if err != nil {
		return nil, fmt.Errorf("copy blocks: %w", err)
	}
	working := copied.(map[string]domain.Block)

	subscribers := p.registry.Subscribers(content, req)
	out := make(map[string]any, len(working))
	for id, block := range working {
		handlers := Applicable(subscribers, block.Type())
		for _, h := range handlers {
			if h.Disabled {
				continue
			}
			block, err = h.Transform(ctx, block, content, req)
			if err != nil {
				return nil, fmt.Errorf("block %s: transformer %s: %w", id, h.Name, err)
			}
		}
		converted, err := jsoncompat.Value(map[string]any(block))
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", id, err)
		}
		out[id] = converted
	}
	return out, nil
}

// Applicable selects the handlers matching blockType and orders them by
// ascending Order. Ties keep discovery order.
func Applicable(handlers []Handler, blockType string) []Handler {
	var matched []Handler
	for _, h := range handlers {
		if h.matches(blockType) {
			matched = append(matched, h)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Order < matched[j].Order
	})
	return matched
}
