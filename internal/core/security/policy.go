// Package security maps roles to permissions and binds that mapping to the
// principal of a single request.
package security

import (
	"github.com/cmsbridge/restapi/internal/core/domain"
)

// Policy grants site-wide permissions to roles. View on content is decided
// per item from its review state and creator.
type Policy struct {
	grants map[string]map[string]struct{}
	// privateViewers may view content that is not published.
	privateViewers []string
}

// DefaultPolicy returns the stock role mapping.
func DefaultPolicy() *Policy {
	p := &Policy{
		grants: make(map[string]map[string]struct{}),
		privateViewers: []string{
			domain.RoleManager,
			domain.RoleSiteAdministrator,
			domain.RoleEditor,
			domain.RoleReviewer,
		},
	}
	p.Grant(domain.PermManagePortal, domain.RoleManager, domain.RoleSiteAdministrator)
	p.Grant(domain.PermAccessUserInfo, domain.RoleManager, domain.RoleSiteAdministrator)
	return p
}

// Grant adds roles to the set allowed to exercise permission.
func (p *Policy) Grant(permission string, roles ...string) {
	set, ok := p.grants[permission]
	if !ok {
		set = make(map[string]struct{}, len(roles))
		p.grants[permission] = set
	}
	for _, r := range roles {
		set[r] = struct{}{}
	}
}

// Allowed reports whether principal holds permission on target. target may
// be nil for site-wide permissions.
func (p *Policy) Allowed(principal domain.Principal, permission string, target *domain.Content) bool {
	if permission == domain.PermView && target != nil {
		return p.canView(principal, target)
	}
	for role := range p.grants[permission] {
		if principal.HasRole(role) {
			return true
		}
	}
	return false
}

func (p *Policy) canView(principal domain.Principal, c *domain.Content) bool {
	if c.ReviewState == domain.StatePublished {
		return true
	}
	if !principal.IsAnonymous() && c.Creator == principal.UserID {
		return true
	}
	for _, role := range p.privateViewers {
		if principal.HasRole(role) {
			return true
		}
	}
	return false
}

// Manager binds a Policy to one principal. It satisfies ports.Security.
type Manager struct {
	policy    *Policy
	principal domain.Principal
}

// NewManager returns the security manager for principal.
func NewManager(policy *Policy, principal domain.Principal) *Manager {
	return &Manager{policy: policy, principal: principal}
}

func (m *Manager) Principal() domain.Principal {
	return m.principal
}

func (m *Manager) CheckPermission(permission string, target *domain.Content) bool {
	return m.policy.Allowed(m.principal, permission, target)
}
