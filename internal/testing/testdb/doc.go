// Package testdb provides isolated SurrealDB databases for integration tests.
//
// Each TestDB gets a unique namespace with every migration applied and is
// removed when the test finishes:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    repo := repository.NewUserRepository(tdb.DB)
//	}
//
// Tests are skipped unless TEST_DB_HOST is set. TEST_DB_PORT, TEST_DB_USER
// and TEST_DB_PASSWORD override the connection defaults.
package testdb
