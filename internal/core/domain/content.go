package domain

import (
	"strings"
	"time"
)

const (
	StatePrivate   = "private"
	StatePublished = "published"
)

// FieldKind selects the serializer used for a content field.
type FieldKind string

const (
	FieldScalar         FieldKind = "scalar"
	FieldRelationChoice FieldKind = "relation_choice"
	FieldRelationList   FieldKind = "relation_list"
)

// Relation is a reference from one content item to another. To is nil when
// the target could not be resolved.
type Relation struct {
	ToUID string
	To    *Content
}

// Field is a single schema field value on a content item. Relation fields
// carry Relation or []Relation in Value.
type Field struct {
	Name  string
	Kind  FieldKind
	Value any
}

// Content is a single item in the content tree.
type Content struct {
	UID         string
	Path        string
	Type        string
	Title       string
	Description string
	ReviewState string
	Creator     string
	Created     time.Time
	Modified    time.Time
	Fields      []Field
	Slots       []Slot
}

// ParentPath returns the path of the containing item, or "" for the root.
func (c *Content) ParentPath() string {
	return ParentPath(c.Path)
}

// ParentPath returns the containing path of p. The root has no parent.
func ParentPath(p string) string {
	p = CleanPath(p)
	if p == "/" {
		return ""
	}
	i := strings.LastIndex(p, "/")
	if i <= 0 {
		return "/"
	}
	return p[:i]
}

// CleanPath normalizes a content path to a leading slash and no trailing one.
func CleanPath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "/"
	}
	return "/" + p
}

// Ancestry lists p and every containing path up to and including the root.
func Ancestry(p string) []string {
	var out []string
	for cur := CleanPath(p); cur != ""; cur = ParentPath(cur) {
		out = append(out, cur)
	}
	return out
}
