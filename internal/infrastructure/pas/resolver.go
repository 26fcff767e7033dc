package pas

import (
	"context"
	"sync"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// FolderFactory builds the user folder that lives at path.
type FolderFactory func(path string) ports.UserFolder

// Registry maps content paths to the user folders placed there and
// resolves the folder responsible for a login.
type Registry struct {
	mu      sync.RWMutex
	folders map[string]ports.UserFolder
	factory FolderFactory
}

func NewRegistry() *Registry {
	return &Registry{folders: make(map[string]ports.UserFolder)}
}

// WithFactory makes Resolve probe ancestors that have no registered folder
// with a folder built by f. A folder that turns out to hold the login is
// registered, so accounts created in new folders after startup resolve
// without a restart.
func (r *Registry) WithFactory(f FolderFactory) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factory = f
	return r
}

// Add places folder at its path, replacing any folder already there.
func (r *Registry) Add(folder ports.UserFolder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.folders[domain.CleanPath(folder.Path())] = folder
}

// Resolve walks from location up to the site root and returns the nearest
// folder that holds an account for login. It returns nil, nil when none does.
func (r *Registry) Resolve(ctx context.Context, location, login string) (ports.UserFolder, error) {
	for _, p := range domain.Ancestry(location) {
		r.mu.RLock()
		folder, registered := r.folders[p]
		factory := r.factory
		r.mu.RUnlock()
		if !registered {
			if factory == nil {
				continue
			}
			folder = factory(p)
		}
		found, err := folder.VerifyUser(ctx, login)
		if err != nil {
			return nil, err
		}
		if found {
			if !registered {
				r.Add(folder)
			}
			return folder, nil
		}
	}
	return nil, nil
}
