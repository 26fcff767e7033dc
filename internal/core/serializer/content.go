package serializer

import (
	"context"
	"fmt"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/jsoncompat"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// ContentSerializer produces the full representation of a content item.
type ContentSerializer struct {
	fields *FieldRegistry
}

func NewContentSerializer(fields *FieldRegistry) *ContentSerializer {
	return &ContentSerializer{fields: fields}
}

func (s *ContentSerializer) Serialize(ctx context.Context, c *domain.Content, req *ports.Request) (map[string]any, error) {
	url := req.AbsoluteURL(c.Path)
	out := map[string]any{
		"@id":          url,
		"@type":        c.Type,
		"UID":          c.UID,
		"title":        c.Title,
		"description":  c.Description,
		"review_state": c.ReviewState,
		"creators":     creators(c),
		"created":      c.Created,
		"modified":     c.Modified,
		"@components": map[string]any{
			"slots": map[string]any{"@id": url + "/" + SlotsServiceID},
		},
	}
	base, err := jsoncompat.Mapping(out)
	if err != nil {
		return nil, err
	}
	for _, f := range c.Fields {
		v, err := s.fields.Lookup(f.Kind).Serialize(ctx, f, c, req)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		base[f.Name] = v
	}
	return base, nil
}

func creators(c *domain.Content) []string {
	if c.Creator == "" {
		return []string{}
	}
	return []string{c.Creator}
}
