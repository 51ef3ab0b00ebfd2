// Package model defines domain entities for Gatekeeper.
//
// The model package contains the user account, the access grant shape used
// when handing roles and permissions to a user, and the RFC 9457 Problem
// Details error type returned by the HTTP layer.
//
// # Domain Entities
//
//   - User: account with credentials, profile and granted access
//   - Access: a role and/or permission to grant in one step
//
// # JSON Serialization
//
// The password hash never leaves the process:
//
//	type User struct {
//	    ID    string  `json:"id"`
//	    Hash  *string `json:"-"`
//	}
package model
