package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cmsbridge/restapi/internal/core/domain"
)

func TestPlain_ConvertsNestedDocuments(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	in := bson.M{
		"@type": "slate",
		"value": bson.A{bson.D{{Key: "type", Value: "p"}, {Key: "children", Value: bson.A{"x"}}}},
		"date":  primitive.NewDateTimeFromTime(when),
	}

	out, ok := plain(in).(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", plain(in))
	}
	value, ok := out["value"].([]any)
	if !ok || len(value) != 1 {
		t.Fatalf("expected []any with one item, got %#v", out["value"])
	}
	para, ok := value[0].(map[string]any)
	if !ok {
		t.Fatalf("expected nested document as map, got %T", value[0])
	}
	if para["type"] != "p" {
		t.Fatalf("unexpected paragraph %#v", para)
	}
	if _, ok := para["children"].([]any); !ok {
		t.Fatalf("expected nested array as []any, got %T", para["children"])
	}
	if got, ok := out["date"].(time.Time); !ok || !got.Equal(when) {
		t.Fatalf("expected %v, got %#v", when, out["date"])
	}
}

func TestContentDocument_ToDomain(t *testing.T) {
	doc := mongoContent{
		UID:         "abc",
		Path:        "/news/item/",
		Type:        "Document",
		ReviewState: domain.StatePublished,
		Fields: []mongoField{
			{Name: "subtitle", Kind: "scalar", Value: "hello"},
			{Name: "related", Kind: string(domain.FieldRelationList), ToUIDs: []string{}},
			{Name: "previous", Kind: string(domain.FieldRelationList)},
			{Name: "lead", Kind: string(domain.FieldRelationChoice), ToUID: "def"},
		},
		Slots: []mongoSlot{{
			Name:         "left",
			Blocks:       map[string]any{"b1": bson.M{"@type": "image", "url": "../resolveuid/def"}},
			BlocksLayout: map[string]any{"items": bson.A{"b1"}},
		}},
	}

	c := doc.toDomain()
	if c.Path != "/news/item" {
		t.Fatalf("path not cleaned: %q", c.Path)
	}
	if c.Fields[0].Value != "hello" || c.Fields[0].Kind != domain.FieldScalar {
		t.Fatalf("unexpected scalar field %#v", c.Fields[0])
	}
	if rels, ok := c.Fields[1].Value.([]domain.Relation); !ok || rels == nil || len(rels) != 0 {
		t.Fatalf("expected empty relation list, got %#v", c.Fields[1].Value)
	}
	if c.Fields[2].Value != nil {
		t.Fatalf("expected nil relation list, got %#v", c.Fields[2].Value)
	}
	if rel, ok := c.Fields[3].Value.(domain.Relation); !ok || rel.ToUID != "def" {
		t.Fatalf("unexpected relation choice %#v", c.Fields[3].Value)
	}

	slot, ok := c.SlotByName("left")
	if !ok {
		t.Fatalf("slot left missing")
	}
	if slot.Blocks["b1"].Type() != "image" {
		t.Fatalf("unexpected block %#v", slot.Blocks["b1"])
	}
	if _, ok := slot.BlocksLayout["items"].([]any); !ok {
		t.Fatalf("expected layout items as []any, got %T", slot.BlocksLayout["items"])
	}
}

func TestContentDocument_RoundTripRelations(t *testing.T) {
	c := &domain.Content{
		UID:  "abc",
		Path: "/a",
		Fields: []domain.Field{
			{Name: "lead", Kind: domain.FieldRelationChoice, Value: domain.Relation{ToUID: "x"}},
			{Name: "related", Kind: domain.FieldRelationList, Value: []domain.Relation{{ToUID: "y"}, {ToUID: "z"}}},
		},
	}

	back := fromContent(c).toDomain()
	if rel := back.Fields[0].Value.(domain.Relation); rel.ToUID != "x" {
		t.Fatalf("unexpected lead %#v", rel)
	}
	rels := back.Fields[1].Value.([]domain.Relation)
	if len(rels) != 2 || rels[0].ToUID != "y" || rels[1].ToUID != "z" {
		t.Fatalf("unexpected related %#v", rels)
	}
}

func TestUserDocument_Defaults(t *testing.T) {
	doc := toMongoUser(&domain.User{Login: "jane"})
	if doc.ID != "jane" {
		t.Fatalf("expected id to default to login, got %q", doc.ID)
	}
	if doc.Folder != "/" {
		t.Fatalf("expected default folder, got %q", doc.Folder)
	}
	u := doc.toDomain()
	if u.Groups == nil || u.Roles == nil {
		t.Fatalf("expected non-nil groups and roles")
	}
}
