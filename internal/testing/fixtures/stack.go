package fixtures

import (
	"context"
	"log/slog"
	"testing"

	"github.com/forgo/gatekeeper/internal/config"
	"github.com/forgo/gatekeeper/internal/repository"
	"github.com/forgo/gatekeeper/internal/service"
	"github.com/forgo/gatekeeper/internal/testing/fakedata"
	"github.com/forgo/gatekeeper/internal/testing/helpers"
	"github.com/forgo/gatekeeper/pkg/jwt"
)

// Stack is a TestingUser wired over in-memory collaborators
type Stack struct {
	Store   *repository.MemoryStore
	Access  *service.AccessService
	Hasher  *service.BcryptHasher
	JWT     *jwt.Service
	Session *helpers.Session
	Users   *TestingUser
}

// NewStackFromEnv builds a Stack from the TEST_* environment settings
// read by config.Load.
func NewStackFromEnv(t testing.TB) *Stack {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("fixtures: failed to load config: %v", err)
	}
	if err := cfg.Fixture.Validate(); err != nil {
		t.Fatalf("fixtures: invalid fixture config: %v", err)
	}
	return NewStack(t, cfg.Fixture)
}

// NewStack builds a Stack from fixture configuration. The configured
// default role and permission are defined in the store's catalog.
func NewStack(t testing.TB, cfg config.FixtureConfig) *Stack {
	t.Helper()

	store := repository.NewMemoryStore()
	defaults := cfg.DefaultAccess()
	if defaults != nil {
		ctx := context.Background()
		if defaults.Roles != "" {
			if err := store.DefineRole(ctx, defaults.Roles); err != nil {
				t.Fatalf("fixtures: failed to define role %q: %v", defaults.Roles, err)
			}
		}
		if defaults.Permissions != "" {
			if err := store.DefinePermission(ctx, defaults.Permissions); err != nil {
				t.Fatalf("fixtures: failed to define permission %q: %v", defaults.Permissions, err)
			}
		}
	}

	jwtService := helpers.NewTestJWTService(t)
	session := helpers.NewSession(t, jwtService)
	access := service.NewAccessService(service.AccessServiceConfig{
		Store:  store,
		Logger: slog.New(slog.DiscardHandler),
	})
	hasher := service.NewBcryptHasher(cfg.BcryptCost)

	return &Stack{
		Store:   store,
		Access:  access,
		Hasher:  hasher,
		JWT:     jwtService,
		Session: session,
		Users: New(t, Options{
			Factory:       NewRepositoryFactory(store),
			Access:        access,
			Hasher:        hasher,
			Faker:         fakedata.New(0),
			Actor:         session,
			Guard:         cfg.Guard,
			DefaultAccess: defaults,
		}),
	}
}
