// Command importcontent loads content items, with their relation fields and
// slots, from a JSON file into the content collection.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/cmsbridge/restapi/internal/core/domain"
	mongostore "github.com/cmsbridge/restapi/internal/infrastructure/db/mongo"
	"github.com/cmsbridge/restapi/internal/pkg/config"
)

type fieldItem struct {
	Name   string    `json:"name"`
	Kind   string    `json:"kind"`
	Value  any       `json:"value"`
	ToUID  string    `json:"to_uid"`
	ToUIDs *[]string `json:"to_uids"`
}

type slotItem struct {
	Name         string                    `json:"name"`
	Blocks       map[string]map[string]any `json:"blocks"`
	BlocksLayout map[string]any            `json:"blocks_layout"`
}

type contentItem struct {
	UID         string      `json:"uid"`
	Path        string      `json:"path"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ReviewState string      `json:"review_state"`
	Creator     string      `json:"creator"`
	Created     time.Time   `json:"created"`
	Modified    time.Time   `json:"modified"`
	Fields      []fieldItem `json:"fields"`
	Slots       []slotItem  `json:"slots"`
}

func main() {
	file := flag.String("file", "", "JSON file holding an array of content items (required)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *file, err)
		os.Exit(1)
	}
	var items []contentItem
	if err := json.Unmarshal(raw, &items); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", *file, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var mongoCfg config.MongoConfig
	if err := envconfig.Process(ctx, &mongoCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: mongoCfg.URI, Database: mongoCfg.Database})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to MongoDB: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	contents := mongostore.NewContentRepository(db)
	if err := contents.EnsureIndexes(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating indexes: %v\n", err)
		os.Exit(1)
	}

	for _, item := range items {
		c, err := item.toContent()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := contents.Save(ctx, c); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving %s: %v\n", c.Path, err)
			os.Exit(1)
		}
		fmt.Printf("Saved %s (%s)\n", c.Path, c.UID)
	}
}

func (it contentItem) toContent() (*domain.Content, error) {
	if it.UID == "" || it.Path == "" {
		return nil, fmt.Errorf("item %q: uid and path are required", it.Path)
	}
	state := it.ReviewState
	if state == "" {
		state = domain.StatePrivate
	}
	c := &domain.Content{
		UID:         it.UID,
		Path:        domain.CleanPath(it.Path),
		Type:        it.Type,
		Title:       it.Title,
		Description: it.Description,
		ReviewState: state,
		Creator:     it.Creator,
		Created:     it.Created,
		Modified:    it.Modified,
	}

	for _, f := range it.Fields {
		field := domain.Field{Name: f.Name, Kind: domain.FieldKind(f.Kind)}
		switch field.Kind {
		case domain.FieldRelationChoice:
			if f.ToUID != "" {
				field.Value = domain.Relation{ToUID: f.ToUID}
			}
		case domain.FieldRelationList:
			if f.ToUIDs != nil {
				rels := make([]domain.Relation, len(*f.ToUIDs))
				for i, uid := range *f.ToUIDs {
					rels[i] = domain.Relation{ToUID: uid}
				}
				field.Value = rels
			}
		case "", domain.FieldScalar:
			field.Kind = domain.FieldScalar
			field.Value = f.Value
		default:
			return nil, fmt.Errorf("item %s: field %s: unknown kind %q", c.Path, f.Name, f.Kind)
		}
		c.Fields = append(c.Fields, field)
	}

	for _, s := range it.Slots {
		blocks := make(map[string]domain.Block, len(s.Blocks))
		for id, b := range s.Blocks {
			blocks[id] = domain.Block(b)
		}
		c.Slots = append(c.Slots, domain.Slot{Name: s.Name, Blocks: blocks, BlocksLayout: s.BlocksLayout})
	}
	return c, nil
}
