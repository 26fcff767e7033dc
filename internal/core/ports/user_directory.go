package ports

import (
	"context"

	"github.com/cmsbridge/restapi/internal/core/domain"
)

// UserSearch carries the criteria for a single user-source search. Empty
// fields do not constrain the result; MaxResults <= 0 means unbounded.
type UserSearch struct {
	ID         string
	Login      string
	FullName   string
	Email      string
	MaxResults int
}

// UserDirectory is the user enumeration and lookup surface.
type UserDirectory interface {
	SearchUsers(ctx context.Context, q UserSearch) ([]domain.PrincipalInfo, error)
	EnumerateUsers(ctx context.Context) ([]domain.PrincipalInfo, error)
	// GetMemberByID returns domain.ErrUserNotFound for unknown ids.
	GetMemberByID(ctx context.Context, id string) (*domain.User, error)
}
