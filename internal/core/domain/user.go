package domain

const (
	RoleManager           = "Manager"
	RoleSiteAdministrator = "Site Administrator"
	RoleEditor            = "Editor"
	RoleReviewer          = "Reviewer"
	RoleMember            = "Member"
	RoleAuthenticated     = "Authenticated"
	RoleAnonymous         = "Anonymous"
)

// DefaultUserFolderPath is where the site-wide user folder lives.
const DefaultUserFolderPath = "/"

// User models a member record held by a user folder.
type User struct {
	ID           string   `json:"id"`
	Login        string   `json:"username"`
	FullName     string   `json:"fullname"`
	Email        string   `json:"email,omitempty"`
	Description  string   `json:"description,omitempty"`
	Location     string   `json:"location,omitempty"`
	HomePage     string   `json:"home_page,omitempty"`
	Groups       []string `json:"groups"`
	Roles        []string `json:"roles"`
	Folder       string   `json:"-"`
	PasswordHash string   `json:"-"`
}

// InGroups reports whether the user belongs to at least one of groups.
func (u *User) InGroups(groups []string) bool {
	for _, want := range groups {
		for _, have := range u.Groups {
			if want == have {
				return true
			}
		}
	}
	return false
}

// PrincipalInfo is a raw search hit from the user source, before the full
// member record is loaded.
type PrincipalInfo struct {
	UserID string
	Login  string
}

// Principal identifies who is making a request. An empty UserID is the
// anonymous user.
type Principal struct {
	UserID string
	Roles  []string
	Groups []string
}

// Anonymous returns the principal used when no credentials were sent.
func Anonymous() Principal {
	return Principal{Roles: []string{RoleAnonymous}}
}

func (p Principal) IsAnonymous() bool {
	return p.UserID == ""
}

// HasRole reports whether the principal holds role. Authenticated principals
// implicitly hold RoleAuthenticated.
func (p Principal) HasRole(role string) bool {
	if role == RoleAuthenticated && !p.IsAnonymous() {
		return true
	}
	if role == RoleAnonymous {
		return true
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
