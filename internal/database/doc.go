// Package database provides SurrealDB connectivity for Gatekeeper.
//
// The Database interface keeps repositories independent of the driver:
//
//	type Database interface {
//	    Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
//	    QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
//	    Execute(ctx context.Context, query string, vars map[string]interface{}) error
//	}
//
// Query returns one {"status": "OK", "result": ...} map per statement.
// QueryOne unwraps the first record of the first statement and returns
// ErrNotFound when there is none.
//
// # Error Types
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection failed
//   - ErrQuery: Statement failed
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database
