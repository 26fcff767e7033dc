// Package transform runs the ordered chain of block transformers applied to
// slot blocks before they are serialized.
package transform

import (
	"context"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// Wildcard registers a handler for every block type.
const Wildcard = "*"

// Func transforms one block. It receives a private copy and may mutate it.
type Func func(ctx context.Context, block domain.Block, content *domain.Content, req *ports.Request) (domain.Block, error)

// Handler describes one block transformer.
type Handler struct {
	Name      string
	BlockType string
	Order     int
	Disabled  bool
	Transform Func
}

func (h Handler) matches(blockType string) bool {
	return h.BlockType == Wildcard || h.BlockType == blockType
}

// Registry is the ordered set of handlers assembled at startup.
type Registry struct {
	handlers []Handler
	disabled map[string]struct{}
}

// NewRegistry returns an empty registry. Handlers whose name is listed in
// disabled are registered with Disabled set.
func NewRegistry(disabled ...string) *Registry {
	r := &Registry{disabled: make(map[string]struct{}, len(disabled))}
	for _, name := range disabled {
		r.disabled[name] = struct{}{}
	}
	return r
}

// Register appends h in discovery order.
func (r *Registry) Register(h Handler) {
	if _, off := r.disabled[h.Name]; off {
		h.Disabled = true
	}
	r.handlers = append(r.handlers, h)
}

// Subscribers returns the handlers available for content and req, in
// registration order.
func (r *Registry) Subscribers(_ *domain.Content, _ *ports.Request) []Handler {
	out := make([]Handler, len(r.handlers))
	copy(out, r.handlers)
	return out
}
