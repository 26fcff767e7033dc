package ports

import (
	"context"

	"github.com/cmsbridge/restapi/internal/core/domain"
)

// LoginInput is the DTO passed from the transport layer to LoginService.
type LoginInput struct {
	Login    string
	Password string
	Request  *domain.AuthRequest
}

// LoginService authenticates credentials and returns an issued token.
type LoginService interface {
	Login(ctx context.Context, in LoginInput) (string, error)
}

// UserQuery carries the filtered listing parameters of the users endpoint.
type UserQuery struct {
	Query        string
	Search       string
	GroupsFilter []string
	Limit        int
}

// UserService answers the three shapes of the users endpoint. Listing
// results may contain nil entries for ids without a member record.
type UserService interface {
	Search(ctx context.Context, sec Security, q UserQuery) ([]*domain.User, error)
	Enumerate(ctx context.Context, sec Security) ([]*domain.User, error)
	Get(ctx context.Context, sec Security, userID string) (*domain.User, error)
}
