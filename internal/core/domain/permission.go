package domain

// Permission names checked by the services.
const (
	PermView           = "View"
	PermManagePortal   = "Manage portal"
	PermAccessUserInfo = "Access user information"
)
