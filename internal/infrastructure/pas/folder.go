// Package pas holds the pluggable authentication service: user folders
// rooted at content paths, the resolver that picks one for a login, and the
// JWT plugin that issues tokens.
package pas

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// UserSource loads accounts owned by a user folder.
type UserSource interface {
	// FindByLogin returns domain.ErrUserNotFound when folder has no such login.
	FindByLogin(ctx context.Context, folder, login string) (*domain.User, error)
}

// CredentialsUpdater is implemented by plugins that react to a successful
// authentication, typically by writing a token into the request.
type CredentialsUpdater interface {
	UpdateCredentials(ctx context.Context, user *domain.User, req *domain.AuthRequest) error
}

// Folder is a user folder backed by a UserSource.
type Folder struct {
	path    string
	users   UserSource
	plugins []ports.AuthenticationPlugin
}

func NewFolder(path string, users UserSource, plugins ...ports.AuthenticationPlugin) *Folder {
	return &Folder{path: domain.CleanPath(path), users: users, plugins: plugins}
}

func (f *Folder) Path() string { return f.path }

func (f *Folder) AuthenticationPlugins() []ports.AuthenticationPlugin {
	out := make([]ports.AuthenticationPlugin, len(f.plugins))
	copy(out, f.plugins)
	return out
}

func (f *Folder) VerifyUser(ctx context.Context, login string) (bool, error) {
	_, err := f.users.FindByLogin(ctx, f.path, login)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("verify user %q in %s: %w", login, f.path, err)
	}
	return true, nil
}

// Authenticate checks the password against the stored bcrypt hash. On
// success every plugin implementing CredentialsUpdater gets to update the
// request, in registration order.
func (f *Folder) Authenticate(ctx context.Context, login, password string, req *domain.AuthRequest) (*domain.User, error) {
	user, err := f.users.FindByLogin(ctx, f.path, login)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user %q: %w", login, err)
	}
	if user.PasswordHash == "" {
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}

	for _, p := range f.plugins {
		updater, ok := p.(CredentialsUpdater)
		if !ok {
			continue
		}
		if err := updater.UpdateCredentials(ctx, user, req); err != nil {
			return nil, fmt.Errorf("plugin %s: update credentials: %w", p.ID(), err)
		}
	}
	return user, nil
}
