package serializer

import (
	"context"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// FieldSerializer adapts one field of a content item to JSON.
type FieldSerializer interface {
	Serialize(ctx context.Context, field domain.Field, content *domain.Content, req *ports.Request) (any, error)
}

// DefaultFieldSerializer passes the stored value through the value converter.
type DefaultFieldSerializer struct {
	values *ValueConverter
}

func (s DefaultFieldSerializer) Serialize(ctx context.Context, field domain.Field, _ *domain.Content, req *ports.Request) (any, error) {
	return s.values.Convert(ctx, field.Value, req)
}

// RelationChoiceFieldSerializer serializes a single relation. A relation is
// either present or absent, so the default handling is enough.
type RelationChoiceFieldSerializer struct {
	DefaultFieldSerializer
}

// RelationListFieldSerializer serializes a list of relations and drops the
// entries whose target is missing or not viewable.
type RelationListFieldSerializer struct {
	DefaultFieldSerializer
}

func (s RelationListFieldSerializer) Serialize(ctx context.Context, field domain.Field, content *domain.Content, req *ports.Request) (any, error) {
	rels, ok := field.Value.([]domain.Relation)
	if !ok || len(rels) == 0 {
		return s.DefaultFieldSerializer.Serialize(ctx, field, content, req)
	}
	out := make([]any, 0, len(rels))
	for _, rel := range rels {
		summary, err := s.values.Relation(ctx, rel, req)
		if err != nil {
			return nil, err
		}
		if summary != nil {
			out = append(out, summary)
		}
	}
	return out, nil
}

// FieldRegistry picks the serializer for a field by its kind.
type FieldRegistry struct {
	byKind   map[domain.FieldKind]FieldSerializer
	fallback FieldSerializer
}

// NewFieldRegistry returns a registry with the relation serializers
// registered and the default serializer as fallback.
func NewFieldRegistry(values *ValueConverter) *FieldRegistry {
	def := DefaultFieldSerializer{values: values}
	r := &FieldRegistry{
		byKind:   make(map[domain.FieldKind]FieldSerializer),
		fallback: def,
	}
	r.Register(domain.FieldRelationChoice, RelationChoiceFieldSerializer{def})
	r.Register(domain.FieldRelationList, RelationListFieldSerializer{def})
	return r
}

func (r *FieldRegistry) Register(kind domain.FieldKind, s FieldSerializer) {
	r.byKind[kind] = s
}

// Lookup returns the serializer for kind, or the default one.
func (r *FieldRegistry) Lookup(kind domain.FieldKind) FieldSerializer {
	if s, ok := r.byKind[kind]; ok {
		return s
	}
	return r.fallback
}
