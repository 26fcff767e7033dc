package ports

import "github.com/cmsbridge/restapi/internal/core/domain"

// Security answers permission questions for the principal of one request.
// It is built per request and passed into each service call.
type Security interface {
	Principal() domain.Principal
	CheckPermission(permission string, target *domain.Content) bool
}
