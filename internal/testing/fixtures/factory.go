package fixtures

import (
	"context"

	"github.com/forgo/gatekeeper/internal/model"
)

// UserCreator is the persistence the repository factory writes through
type UserCreator interface {
	Create(ctx context.Context, user *model.User) error
}

// RepositoryFactory persists fixture users through a repository. Users get
// the admin profile unless Profile is set.
type RepositoryFactory struct {
	users   UserCreator
	Profile model.Profile
}

// NewRepositoryFactory creates a factory writing to users
func NewRepositoryFactory(users UserCreator) *RepositoryFactory {
	return &RepositoryFactory{users: users, Profile: model.ProfileAdmin}
}

// Create stores a user from creds, whose Password holds the hash
func (f *RepositoryFactory) Create(ctx context.Context, creds Details) (*model.User, error) {
	profile := f.Profile
	if profile == "" {
		profile = model.ProfileAdmin
	}

	user := &model.User{
		Name:      creds.Name,
		Email:     creds.Email,
		Profile:   profile,
		Confirmed: creds.Confirmed != nil && *creds.Confirmed,
	}
	if creds.Password != "" {
		hash := creds.Password
		user.Hash = &hash
	}

	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
