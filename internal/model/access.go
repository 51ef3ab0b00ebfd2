package model

// Access describes the permission and role to grant a user.
// Empty fields grant nothing.
type Access struct {
	Permissions string `json:"permissions,omitempty"`
	Roles       string `json:"roles,omitempty"`
}

// NoAccess returns an Access that grants nothing. Passing it explicitly
// overrides any configured default.
func NoAccess() *Access {
	return &Access{}
}

// IsEmpty returns true if the access grants neither a permission nor a role
func (a *Access) IsEmpty() bool {
	return a == nil || (a.Permissions == "" && a.Roles == "")
}
