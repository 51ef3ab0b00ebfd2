package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgo/gatekeeper/internal/database"
	"github.com/forgo/gatekeeper/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and fills in its ID and timestamps
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	profile := user.Profile
	if profile == "" {
		profile = model.ProfileMember
	}

	query := `
		CREATE user CONTENT {
			name: $name,
			email: $email,
			hash: IF $hash IS NOT NULL THEN $hash ELSE NONE END,
			profile: $profile,
			confirmed: $confirmed,
			roles: [],
			permissions: [],
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"name":      user.Name,
		"email":     strings.ToLower(strings.TrimSpace(user.Email)),
		"hash":      user.Hash,
		"profile":   string(profile),
		"confirmed": user.Confirmed,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := parseUser(result)
	if err != nil {
		return err
	}
	user.ID = created.ID
	user.Email = created.Email
	user.Profile = created.Profile
	user.Roles = created.Roles
	user.Permissions = created.Permissions
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT * FROM user WHERE email = $email LIMIT 1`, map[string]interface{}{
		"email": strings.ToLower(strings.TrimSpace(email)),
	})
}

func (r *UserRepository) getOne(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUser(result)
}

func parseUser(result interface{}) (*model.User, error) {
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected user record format %T", result)
	}

	return &model.User{
		ID:          convertSurrealID(data["id"]),
		Name:        getString(data, "name"),
		Email:       getString(data, "email"),
		Hash:        getStringPtr(data, "hash"),
		Profile:     model.Profile(getString(data, "profile")),
		Confirmed:   getBool(data, "confirmed"),
		Roles:       getStringSlice(data, "roles"),
		Permissions: getStringSlice(data, "permissions"),
		CreatedOn:   getTime(data, "created_on"),
		UpdatedOn:   getTime(data, "updated_on"),
	}, nil
}
