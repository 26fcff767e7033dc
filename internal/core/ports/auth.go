package ports

import (
	"context"

	"github.com/cmsbridge/restapi/internal/core/domain"
)

// JWTPluginMetaType is the meta type label of the token issuing plugin.
const JWTPluginMetaType = "JWT Authentication Plugin"

// AuthenticationPlugin is a plugin registered as an authenticator in a
// user folder.
type AuthenticationPlugin interface {
	ID() string
	MetaType() string
	Path() string
}

// TokenPlugin is an authenticator that writes an issued token into the
// request under CookieName.
type TokenPlugin interface {
	AuthenticationPlugin
	CookieName() string
}

// UserFolder is an authentication source rooted at a content path.
type UserFolder interface {
	Path() string
	// VerifyUser reports whether the folder holds an account for login.
	VerifyUser(ctx context.Context, login string) (bool, error)
	AuthenticationPlugins() []AuthenticationPlugin
	// Authenticate returns nil, nil when the credentials do not match.
	Authenticate(ctx context.Context, login, password string, req *domain.AuthRequest) (*domain.User, error)
}

// UserFolderResolver finds the user folder responsible for login when
// requested at location. It returns nil, nil when no folder knows the login.
type UserFolderResolver interface {
	Resolve(ctx context.Context, location, login string) (UserFolder, error)
}

// PostLoginHook runs the side effects of a successful interactive login.
type PostLoginHook interface {
	AfterLogin(ctx context.Context, user *domain.User, req *domain.AuthRequest) error
}
