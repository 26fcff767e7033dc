package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cmsbridge/restapi/internal/core/domain"
)

const collectionContent = "content"

type ContentRepository struct {
	col *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{col: db.Collection(collectionContent)}
}

type mongoField struct {
	Name   string   `bson:"name"`
	Kind   string   `bson:"kind"`
	Value  any      `bson:"value,omitempty"`
	ToUID  string   `bson:"to_uid,omitempty"`
	ToUIDs []string `bson:"to_uids"`
}

type mongoSlot struct {
	Name         string         `bson:"name"`
	Blocks       map[string]any `bson:"blocks"`
	BlocksLayout map[string]any `bson:"blocks_layout"`
}

type mongoContent struct {
	UID         string       `bson:"_id"`
	Path        string       `bson:"path"`
	Type        string       `bson:"type"`
	Title       string       `bson:"title"`
	Description string       `bson:"description"`
	ReviewState string       `bson:"review_state"`
	Creator     string       `bson:"creator"`
	Created     time.Time    `bson:"created"`
	Modified    time.Time    `bson:"modified"`
	Fields      []mongoField `bson:"fields"`
	Slots       []mongoSlot  `bson:"slots"`
}

// FindByPath retrieves the item stored at path.
func (r *ContentRepository) FindByPath(ctx context.Context, path string) (*domain.Content, error) {
	return r.findOne(ctx, bson.M{"path": domain.CleanPath(path)})
}

// FindByUID retrieves an item by its unique id.
func (r *ContentRepository) FindByUID(ctx context.Context, uid string) (*domain.Content, error) {
	return r.findOne(ctx, bson.M{"_id": uid})
}

// Save upserts c keyed by its UID.
func (r *ContentRepository) Save(ctx context.Context, c *domain.Content) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromContent(c)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.UID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save content %s: %w", c.Path, err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the content collection.
func (r *ContentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "path", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ContentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoContent
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("find content: %w", err)
	}
	return doc.toDomain(), nil
}

func (doc mongoContent) toDomain() *domain.Content {
	c := &domain.Content{
		UID:         doc.UID,
		Path:        domain.CleanPath(doc.Path),
		Type:        doc.Type,
		Title:       doc.Title,
		Description: doc.Description,
		ReviewState: doc.ReviewState,
		Creator:     doc.Creator,
		Created:     doc.Created.UTC(),
		Modified:    doc.Modified.UTC(),
	}
	for _, f := range doc.Fields {
		c.Fields = append(c.Fields, f.toDomain())
	}
	for _, s := range doc.Slots {
		slot := domain.Slot{
			Name:         s.Name,
			Blocks:       make(map[string]domain.Block, len(s.Blocks)),
			BlocksLayout: plainMap(s.BlocksLayout),
		}
		for id, raw := range s.Blocks {
			if m, ok := plain(raw).(map[string]any); ok {
				slot.Blocks[id] = domain.Block(m)
			}
		}
		c.Slots = append(c.Slots, slot)
	}
	return c
}

// Relation targets are left unresolved; the serializers look them up so
// that permission checks happen per request.
func (f mongoField) toDomain() domain.Field {
	kind := domain.FieldKind(f.Kind)
	field := domain.Field{Name: f.Name, Kind: kind}
	switch kind {
	case domain.FieldRelationChoice:
		if f.ToUID != "" {
			field.Value = domain.Relation{ToUID: f.ToUID}
		}
	case domain.FieldRelationList:
		if f.ToUIDs != nil {
			rels := make([]domain.Relation, len(f.ToUIDs))
			for i, uid := range f.ToUIDs {
				rels[i] = domain.Relation{ToUID: uid}
			}
			field.Value = rels
		}
	default:
		field.Kind = domain.FieldScalar
		field.Value = plain(f.Value)
	}
	return field
}

func fromContent(c *domain.Content) mongoContent {
	doc := mongoContent{
		UID:         c.UID,
		Path:        domain.CleanPath(c.Path),
		Type:        c.Type,
		Title:       c.Title,
		Description: c.Description,
		ReviewState: c.ReviewState,
		Creator:     c.Creator,
		Created:     c.Created,
		Modified:    c.Modified,
	}
	for _, f := range c.Fields {
		mf := mongoField{Name: f.Name, Kind: string(f.Kind)}
		switch v := f.Value.(type) {
		case domain.Relation:
			mf.ToUID = v.ToUID
		case *domain.Relation:
			if v != nil {
				mf.ToUID = v.ToUID
			}
		case []domain.Relation:
			mf.ToUIDs = make([]string, len(v))
			for i, rel := range v {
				mf.ToUIDs[i] = rel.ToUID
			}
		default:
			mf.Value = v
		}
		doc.Fields = append(doc.Fields, mf)
	}
	for _, s := range c.Slots {
		blocks := make(map[string]any, len(s.Blocks))
		for id, b := range s.Blocks {
			blocks[id] = map[string]any(b)
		}
		doc.Slots = append(doc.Slots, mongoSlot{Name: s.Name, Blocks: blocks, BlocksLayout: s.BlocksLayout})
	}
	return doc
}
