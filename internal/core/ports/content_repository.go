package ports

import (
	"context"

	"github.com/cmsbridge/restapi/internal/core/domain"
)

// ContentRepository reads items from the content tree. Both lookups return
// domain.ErrContentNotFound when nothing matches.
type ContentRepository interface {
	FindByPath(ctx context.Context, path string) (*domain.Content, error)
	FindByUID(ctx context.Context, uid string) (*domain.Content, error)
}
