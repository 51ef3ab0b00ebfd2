// Package fixtures provides the TestingUser fixture: a per-test factory for
// an authenticated user with optional roles and permissions.
//
// # Usage
//
//	tu := fixtures.New(t, fixtures.Options{
//	    Factory: fixtures.NewRepositoryFactory(store),
//	    Access:  accessService,
//	    Hasher:  hasher,
//	    Faker:   fakedata.New(0),
//	    Actor:   session,
//	})
//
//	user := tu.MustGetUser(nil, nil)                        // memoized
//	admin := tu.MustGetUser(&fixtures.Details{}, &model.Access{Roles: "admin"})
//	plain := tu.MustGetUserWithoutAccess(nil)
//
// # Access Resolution
//
// The access granted to a new user is the explicit argument when given,
// otherwise Options.DefaultAccess, otherwise nothing. GetUserWithoutAccess
// always grants nothing.
//
// # Stack
//
// NewStack wires the fixture over an in-memory store, bcrypt and a JWT
// session so tests can drive HTTP handlers as the created user.
package fixtures
