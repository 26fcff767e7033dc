package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cmsbridge/restapi/internal/core/domain"
)

func TestPolicy_ManagePortal(t *testing.T) {
	p := DefaultPolicy()

	manager := domain.Principal{UserID: "admin", Roles: []string{domain.RoleManager}}
	member := domain.Principal{UserID: "jane", Roles: []string{domain.RoleMember}}

	assert.True(t, p.Allowed(manager, domain.PermManagePortal, nil))
	assert.False(t, p.Allowed(member, domain.PermManagePortal, nil))
	assert.False(t, p.Allowed(domain.Anonymous(), domain.PermManagePortal, nil))
}

func TestPolicy_ViewContent(t *testing.T) {
	p := DefaultPolicy()
	published := &domain.Content{Path: "/news", ReviewState: domain.StatePublished}
	private := &domain.Content{Path: "/draft", ReviewState: domain.StatePrivate, Creator: "jane"}

	cases := []struct {
		name      string
		principal domain.Principal
		target    *domain.Content
		want      bool
	}{
		{"anonymous sees published", domain.Anonymous(), published, true},
		{"anonymous cannot see private", domain.Anonymous(), private, false},
		{"creator sees own private", domain.Principal{UserID: "jane"}, private, true},
		{"other member cannot see private", domain.Principal{UserID: "bob", Roles: []string{domain.RoleMember}}, private, false},
		{"reviewer sees private", domain.Principal{UserID: "rev", Roles: []string{domain.RoleReviewer}}, private, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Allowed(tc.principal, domain.PermView, tc.target))
		})
	}
}

func TestManager_BindsPrincipal(t *testing.T) {
	principal := domain.Principal{UserID: "admin", Roles: []string{domain.RoleSiteAdministrator}}
	m := NewManager(DefaultPolicy(), principal)

	assert.Equal(t, "admin", m.Principal().UserID)
	assert.True(t, m.CheckPermission(domain.PermAccessUserInfo, nil))
}
