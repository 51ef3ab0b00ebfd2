package model

import (
	"slices"
	"time"
)

// Profile is the factory variant a user account was created with
type Profile string

const (
	ProfileMember Profile = "member" // Default profile
	ProfileAdmin  Profile = "admin"  // Back-office staff account
)

// User represents a user account
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Hash        *string   `json:"-"` // Never expose password hash
	Profile     Profile   `json:"profile"`
	Confirmed   bool      `json:"confirmed"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// HasRole reports whether the loaded user state holds the named role.
// Callers that just granted a role must reload the user first.
func (u *User) HasRole(name string) bool {
	return slices.Contains(u.Roles, name)
}

// HasPermission reports whether the loaded user state holds the permission
func (u *User) HasPermission(name string) bool {
	return slices.Contains(u.Permissions, name)
}

// IsAdmin returns true if the account was created with the admin profile
func (u *User) IsAdmin() bool {
	return u.Profile == ProfileAdmin
}
