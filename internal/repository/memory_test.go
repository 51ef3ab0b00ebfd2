package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/forgo/gatekeeper/internal/database"
	"github.com/forgo/gatekeeper/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateAssignsIDAndNormalizesEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	u := &model.User{Name: "Ada", Email: "  Ada@Example.COM "}
	require.NoError(t, s.Create(ctx, u))

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, model.ProfileMember, u.Profile)
	assert.False(t, u.CreatedOn.IsZero())

	byEmail, err := s.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)
}

func TestMemoryStore_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Create(ctx, &model.User{Email: "dup@example.com"}))
	err := s.Create(ctx, &model.User{Email: "dup@example.com"})

	assert.True(t, errors.Is(err, database.ErrDuplicate), "got %v", err)
}

func TestMemoryStore_MissingUserIsNil(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()

	u, err := s.GetByID(context.Background(), "user:missing")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestMemoryStore_ReadsReturnCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	u := &model.User{Email: "copy@example.com"}
	require.NoError(t, s.Create(ctx, u))
	require.NoError(t, s.AddRole(ctx, u.ID, "editor"))

	assert.Empty(t, u.Roles, "caller's struct must not see the grant until it reloads")

	loaded, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"editor"}, loaded.Roles)

	loaded.Roles[0] = "tampered"
	again, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"editor"}, again.Roles)
}

func TestMemoryStore_GrantsAreSetSemantic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	u := &model.User{Email: "grants@example.com"}
	require.NoError(t, s.Create(ctx, u))

	require.NoError(t, s.AddRole(ctx, u.ID, "editor"))
	require.NoError(t, s.AddRole(ctx, u.ID, "editor"))
	require.NoError(t, s.AddPermissions(ctx, u.ID, []string{"posts.publish", "posts.publish"}))
	require.NoError(t, s.AddPermissions(ctx, u.ID, []string{"posts.publish"}))

	loaded, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"editor"}, loaded.Roles)
	assert.Equal(t, []string{"posts.publish"}, loaded.Permissions)
}

func TestMemoryStore_GrantOnMissingUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	assert.ErrorIs(t, s.AddRole(ctx, "user:nope", "editor"), database.ErrNotFound)
	assert.ErrorIs(t, s.AddPermissions(ctx, "user:nope", []string{"x"}), database.ErrNotFound)
}

func TestMemoryStore_Catalog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.DefineRole(ctx, "admin"))
	require.NoError(t, s.DefinePermission(ctx, "users.read"))

	ok, err := s.RoleExists(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.RoleExists(ctx, "users.read")
	require.NoError(t, err)
	assert.False(t, ok, "permission names are not roles")

	ok, err = s.PermissionExists(ctx, "users.read")
	require.NoError(t, err)
	assert.True(t, ok)
}
