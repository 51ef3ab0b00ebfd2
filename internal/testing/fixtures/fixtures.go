package fixtures

import (
	"context"
	"testing"

	"github.com/forgo/gatekeeper/internal/model"
)

// DefaultGuard is used when Options.Guard is empty
const DefaultGuard = "api"

// Details are the optional attributes of a test user. Empty strings and a
// nil Confirmed mean "not supplied".
type Details struct {
	Name      string
	Email     string
	Password  string
	Confirmed *bool
}

// UserFactory persists a user built from prepared credentials. The
// credentials' Password is already hashed.
type UserFactory interface {
	Create(ctx context.Context, creds Details) (*model.User, error)
}

// AccessControl grants and checks roles and permissions
type AccessControl interface {
	GrantPermission(ctx context.Context, user *model.User, names ...string) error
	AssignRole(ctx context.Context, user *model.User, name string) error
	HasRole(ctx context.Context, user *model.User, name string) (bool, error)
	Refresh(ctx context.Context, user *model.User) (*model.User, error)
}

// PasswordHasher hashes plaintext passwords
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// FakeData supplies values for details that were not given
type FakeData interface {
	Name() string
	Email() string
	Password() string
}

// Actor registers the principal for subsequent requests
type Actor interface {
	ActAs(user *model.User, guard string)
}

// Options configures a TestingUser
type Options struct {
	Factory UserFactory
	Access  AccessControl
	Hasher  PasswordHasher
	Faker   FakeData
	Actor   Actor

	// Guard the user acts on. Defaults to DefaultGuard.
	Guard string
	// DefaultAccess applies when GetUser is called without access
	DefaultAccess *model.Access
}

// TestingUser creates or reuses the acting user for one test
type TestingUser struct {
	t    testing.TB
	opts Options
	user *model.User
}

// New creates a TestingUser bound to t
func New(t testing.TB, opts Options) *TestingUser {
	if opts.Guard == "" {
		opts.Guard = DefaultGuard
	}
	return &TestingUser{t: t, opts: opts}
}

// User returns the memoized user, or nil before one was created
func (tu *TestingUser) User() *model.User {
	return tu.user
}

// Guard returns the guard users act on
func (tu *TestingUser) Guard() string {
	return tu.opts.Guard
}

// GetUser returns the memoized user when details is nil and one exists.
// Otherwise it creates a new user, which becomes the memoized one.
func (tu *TestingUser) GetUser(ctx context.Context, details *Details, access *model.Access) (*model.User, error) {
	if details == nil && tu.user != nil {
		return tu.user, nil
	}
	return tu.create(ctx, details, access)
}

// GetUserWithoutAccess is GetUser with no roles or permissions, ignoring
// the configured default access
func (tu *TestingUser) GetUserWithoutAccess(ctx context.Context, details *Details) (*model.User, error) {
	return tu.GetUser(ctx, details, model.NoAccess())
}

// MustGetUser is GetUser that fails the test on error
func (tu *TestingUser) MustGetUser(details *Details, access *model.Access) *model.User {
	tu.t.Helper()
	user, err := tu.GetUser(context.Background(), details, access)
	if err != nil {
		tu.t.Fatalf("fixtures: failed to get user: %v", err)
	}
	return user
}

// MustGetUserWithoutAccess is GetUserWithoutAccess that fails the test on
// error
func (tu *TestingUser) MustGetUserWithoutAccess(details *Details) *model.User {
	tu.t.Helper()
	user, err := tu.GetUserWithoutAccess(context.Background(), details)
	if err != nil {
		tu.t.Fatalf("fixtures: failed to get user: %v", err)
	}
	return user
}

func (tu *TestingUser) create(ctx context.Context, details *Details, access *model.Access) (*model.User, error) {
	if details != nil && details.Confirmed == nil {
		confirmed := true
		withConfirmed := *details
		withConfirmed.Confirmed = &confirmed
		details = &withConfirmed
	}

	creds, err := tu.HashPassword(tu.PrepareCredentials(details))
	if err != nil {
		return nil, err
	}

	user, err := tu.opts.Factory.Create(ctx, creds)
	if err != nil {
		return nil, err
	}

	user, err = tu.ApplyAccess(ctx, user, access)
	if err != nil {
		return nil, err
	}

	tu.opts.Actor.ActAs(user, tu.opts.Guard)
	tu.user = user
	return user, nil
}

// PrepareCredentials fills in missing name, email and password from the
// fake-data generator. A nil details yields a fully generated set.
func (tu *TestingUser) PrepareCredentials(details *Details) Details {
	var creds Details
	if details != nil {
		creds = *details
	}

	if creds.Name == "" {
		creds.Name = tu.opts.Faker.Name()
	}
	if creds.Email == "" {
		creds.Email = tu.opts.Faker.Email()
	}
	if creds.Password == "" {
		creds.Password = tu.opts.Faker.Password()
	}
	return creds
}

// HashPassword replaces the plaintext password with its hash, generating a
// password first when none is set
func (tu *TestingUser) HashPassword(creds Details) (Details, error) {
	password := creds.Password
	if password == "" {
		password = tu.opts.Faker.Password()
	}

	hash, err := tu.opts.Hasher.Hash(password)
	if err != nil {
		return Details{}, err
	}
	creds.Password = hash
	return creds, nil
}

// ApplyAccess grants access, falling back to the configured default when
// access is nil. Permissions are granted whenever set; the role only when
// the user does not already hold it. The user is reloaded after each grant.
func (tu *TestingUser) ApplyAccess(ctx context.Context, user *model.User, access *model.Access) (*model.User, error) {
	if access == nil {
		access = tu.opts.DefaultAccess
	}
	if access.IsEmpty() {
		return user, nil
	}

	if access.Permissions != "" {
		if err := tu.opts.Access.GrantPermission(ctx, user, access.Permissions); err != nil {
			return nil, err
		}
		refreshed, err := tu.opts.Access.Refresh(ctx, user)
		if err != nil {
			return nil, err
		}
		user = refreshed
	}

	if access.Roles != "" {
		has, err := tu.opts.Access.HasRole(ctx, user, access.Roles)
		if err != nil {
			return nil, err
		}
		if !has {
			if err := tu.opts.Access.AssignRole(ctx, user, access.Roles); err != nil {
				return nil, err
			}
			refreshed, err := tu.opts.Access.Refresh(ctx, user)
			if err != nil {
				return nil, err
			}
			user = refreshed
		}
	}

	return user, nil
}
