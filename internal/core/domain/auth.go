package domain

const (
	FormLoginKey    = "__ac_name"
	FormPasswordKey = "__ac_password"
)

// AuthRequest is the transient per-request state shared between the login
// flow and the authentication plugins. It is never persisted.
type AuthRequest struct {
	// Location is the content path the login was posted to.
	Location string
	// Form holds legacy form credentials for plugins that read them.
	Form map[string]string
	// Values holds request values written by credential-update plugins,
	// keyed by cookie name.
	Values map[string]string
}

// NewAuthRequest returns an AuthRequest rooted at location.
func NewAuthRequest(location string) *AuthRequest {
	return &AuthRequest{
		Location: CleanPath(location),
		Form:     make(map[string]string),
		Values:   make(map[string]string),
	}
}

// Value returns the request value stored under key.
func (r *AuthRequest) Value(key string) (string, bool) {
	v, ok := r.Values[key]
	return v, ok
}
