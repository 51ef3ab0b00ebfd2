package repository

import (
	"context"

	"github.com/forgo/gatekeeper/internal/database"
	"github.com/forgo/gatekeeper/internal/model"
)

// AccessRepository stores the role and permission catalogs and the grants
// held on each user record
type AccessRepository struct {
	db    database.Database
	users *UserRepository
}

// NewAccessRepository creates a new access repository
func NewAccessRepository(db database.Database) *AccessRepository {
	return &AccessRepository{db: db, users: NewUserRepository(db)}
}

// DefineRole adds a role to the catalog. Defining an existing role is a no-op.
func (r *AccessRepository) DefineRole(ctx context.Context, name string) error {
	return r.define(ctx, "role", name)
}

// DefinePermission adds a permission to the catalog
func (r *AccessRepository) DefinePermission(ctx context.Context, name string) error {
	return r.define(ctx, "permission", name)
}

func (r *AccessRepository) define(ctx context.Context, table, name string) error {
	query := `
		IF array::len((SELECT id FROM type::table($table) WHERE name = $name)) = 0 THEN
			(CREATE type::table($table) CONTENT { name: $name, created_on: time::now() })
		END
	`
	return r.db.Execute(ctx, query, map[string]interface{}{"table": table, "name": name})
}

// RoleExists reports whether the role is in the catalog
func (r *AccessRepository) RoleExists(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, "role", name)
}

// PermissionExists reports whether the permission is in the catalog
func (r *AccessRepository) PermissionExists(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, "permission", name)
}

func (r *AccessRepository) exists(ctx context.Context, table, name string) (bool, error) {
	results, err := r.db.Query(ctx, `SELECT id FROM type::table($table) WHERE name = $name LIMIT 1`,
		map[string]interface{}{"table": table, "name": name})
	if err != nil {
		return false, err
	}
	return len(database.Records(results)) > 0, nil
}

// AddRole records the role on the user. Repeated calls leave one entry.
func (r *AccessRepository) AddRole(ctx context.Context, userID, role string) error {
	query := `UPDATE type::record($id) SET roles = array::union(roles, [$role]), updated_on = time::now()`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": userID, "role": role})
}

// AddPermissions records the permissions on the user
func (r *AccessRepository) AddPermissions(ctx context.Context, userID string, names []string) error {
	query := `UPDATE type::record($id) SET permissions = array::union(permissions, $names), updated_on = time::now()`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": userID, "names": names})
}

// GetByID loads the current user state
func (r *AccessRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.users.GetByID(ctx, id)
}
