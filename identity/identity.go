// Package identity defines the authenticated actor held client-side.
package identity

// Identity is the profile of the signed-in actor. At most one Identity is
// live per client process; it is created on login or session restore and
// destroyed on logout or terminal refresh failure.
type Identity struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsResident  bool   `json:"is_resident"`
	IsSuperuser bool   `json:"is_superuser"`

	// RoleID references a custom role, when the backend assigns one.
	RoleID string `json:"role,omitempty"`
}

// Degraded builds a minimal Identity from a username alone. It is used when
// the credential exchange succeeded but the profile lookup failed: the login
// still completes with this placeholder rather than failing outright.
func Degraded(username string) *Identity {
	return &Identity{
		Username:    username,
		DisplayName: username,
		IsActive:    true,
	}
}
