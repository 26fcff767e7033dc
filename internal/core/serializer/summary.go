// Package serializer turns content, relation fields and slots into
// JSON-compatible values.
package serializer

import (
	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/jsoncompat"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// MetadataUID is the metadata field carrying a content item's unique id.
const MetadataUID = "UID"

// SummaryOptions selects the extra metadata columns included in a summary.
type SummaryOptions struct {
	MetadataFields []string
}

// Summary is the reduced representation of a content item.
func Summary(c *domain.Content, req *ports.Request, opts SummaryOptions) (map[string]any, error) {
	out := map[string]any{
		"@id":          req.AbsoluteURL(c.Path),
		"@type":        c.Type,
		"title":        c.Title,
		"description":  c.Description,
		"review_state": c.ReviewState,
	}
	for _, name := range opts.MetadataFields {
		if v, ok := metadata(c, name); ok {
			out[name] = v
		}
	}
	return jsoncompat.Mapping(out)
}

func metadata(c *domain.Content, name string) (any, bool) {
	switch name {
	case MetadataUID:
		return c.UID, true
	case "Creator":
		return c.Creator, true
	case "created":
		return c.Created, true
	case "modified":
		return c.Modified, true
	case "portal_type":
		return c.Type, true
	}
	return nil, false
}
