// Package repository implements the data access layer for Gatekeeper.
//
// Two backends satisfy the same method sets:
//
//   - UserRepository and AccessRepository run SurrealQL against a
//     database.Database
//   - MemoryStore keeps everything in process, for tests and for running the
//     server without a database (DB_DRIVER=memory)
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax
//   - type::record() for safe ID handling
//   - array::union() so repeated grants never duplicate
//   - time::now() for automatic timestamps
//
// # Lookups
//
// GetByID and GetByEmail return (nil, nil) for a missing user. Callers that
// need a hard failure translate that into database.ErrNotFound.
//
//	repo := NewUserRepository(db)
//	user, err := repo.GetByID(ctx, "user:abc123")
package repository
