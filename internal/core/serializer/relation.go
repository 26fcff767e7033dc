package serializer

import (
	"context"
	"errors"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/jsoncompat"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// ValueConverter converts field values to JSON, resolving relation values
// into permission-checked summaries on the way.
type ValueConverter struct {
	contents ports.ContentRepository
}

func NewValueConverter(contents ports.ContentRepository) *ValueConverter {
	return &ValueConverter{contents: contents}
}

// Convert is the JSON-compatible form of v. Relation values become
// summaries or nil; everything else goes through jsoncompat.
func (vc *ValueConverter) Convert(ctx context.Context, v any, req *ports.Request) (any, error) {
	switch t := v.(type) {
	case domain.Relation:
		return vc.Relation(ctx, t, req)
	case *domain.Relation:
		if t == nil {
			return nil, nil
		}
		return vc.Relation(ctx, *t, req)
	case []domain.Relation:
		if t == nil {
			return nil, nil
		}
		out := make([]any, len(t))
		for i, rel := range t {
			s, err := vc.Relation(ctx, rel, req)
			if err != nil {
				return nil, err
			}
			out[i] = s
		}
		return out, nil
	}
	return jsoncompat.Value(v)
}

// Relation returns the summary of the relation's target, or nil when the
// target is gone or the requester may not view it.
func (vc *ValueConverter) Relation(ctx context.Context, rel domain.Relation, req *ports.Request) (any, error) {
	target := rel.To
	if target == nil && rel.ToUID != "" {
		found, err := vc.contents.FindByUID(ctx, rel.ToUID)
		if err != nil && !errors.Is(err, domain.ErrContentNotFound) {
			return nil, err
		}
		target = found
	}
	if target == nil || !req.Security.CheckPermission(domain.PermView, target) {
		return nil, nil
	}
	summary, err := Summary(target, req, SummaryOptions{MetadataFields: []string{MetadataUID}})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
