// Package service implements the business logic layer for Gatekeeper.
//
// # Services
//
//   - AccessService: grants roles and permissions from the catalog, answers
//     role checks against loaded user state, and reloads users
//   - BcryptHasher: hashes and verifies passwords
//
// Services define their own store interfaces so tests can substitute mocks
// and the server can run on either the SurrealDB repositories or the
// in-memory store.
//
// # Error Handling
//
// Errors are package-level sentinels wrapped with the offending name:
//
//	if errors.Is(err, service.ErrUnknownRole) {
//	    // Role was never defined in the catalog
//	}
package service
