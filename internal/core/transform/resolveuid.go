package transform

import (
	"context"
	"errors"
	"regexp"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// ResolveUIDName is the registry name of the resolveuid transformer.
const ResolveUIDName = "resolveuid"

var resolveUIDPattern = regexp.MustCompile(`^(?:\.\./)*(?:.*/)?resolve[uU]id/([^/?#]+)(.*)$`)

var linkKeys = map[string]struct{}{
	"url":  {},
	"href": {},
	"@id":  {},
}

// ResolveUID returns the transformer that rewrites resolveuid links inside
// blocks into absolute URLs of their targets. Links to unknown UIDs are left
// as they are.
func ResolveUID(contents ports.ContentRepository) Handler {
	return Handler{
		Name:      ResolveUIDName,
		BlockType: Wildcard,
		Order:     100,
		Transform: func(ctx context.Context, block domain.Block, _ *domain.Content, req *ports.Request) (domain.Block, error) {
			r := resolver{ctx: ctx, contents: contents, req: req}
			if err := r.walkMap(block); err != nil {
				return nil, err
			}
			return block, nil
		},
	}
}

type resolver struct {
	ctx      context.Context
	contents ports.ContentRepository
	req      *ports.Request
}

func (r resolver) walkMap(m map[string]any) error {
	for k, v := range m {
		if s, ok := v.(string); ok {
			if _, isLink := linkKeys[k]; !isLink {
				continue
			}
			resolved, err := r.resolve(s)
			if err != nil {
				return err
			}
			m[k] = resolved
			continue
		}
		if err := r.walk(v); err != nil {
			return err
		}
	}
	return nil
}

func (r resolver) walk(v any) error {
	switch t := v.(type) {
	case map[string]any:
		return r.walkMap(t)
	case domain.Block:
		return r.walkMap(t)
	case []any:
		for _, item := range t {
			if err := r.walk(item); err != nil {
				return err
			}
		}
	case []map[string]any:
		for _, item := range t {
			if err := r.walkMap(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r resolver) resolve(link string) (string, error) {
	m := resolveUIDPattern.FindStringSubmatch(link)
	if m == nil {
		return link, nil
	}
	target, err := r.contents.FindByUID(r.ctx, m[1])
	if errors.Is(err, domain.ErrContentNotFound) {
		return link, nil
	}
	if err != nil {
		return "", err
	}
	return r.req.AbsoluteURL(target.Path) + m[2], nil
}
