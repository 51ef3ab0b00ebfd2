package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/gatekeeper/internal/model"
)

// AccessStore defines the storage the access service needs
type AccessStore interface {
	RoleExists(ctx context.Context, name string) (bool, error)
	PermissionExists(ctx context.Context, name string) (bool, error)
	AddRole(ctx context.Context, userID, role string) error
	AddPermissions(ctx context.Context, userID string, names []string) error
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// AccessService grants roles and permissions to users
type AccessService struct {
	store  AccessStore
	logger *slog.Logger
}

// AccessServiceConfig holds configuration for the access service
type AccessServiceConfig struct {
	Store  AccessStore
	Logger *slog.Logger
}

// NewAccessService creates a new access service
func NewAccessService(cfg AccessServiceConfig) *AccessService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AccessService{store: cfg.Store, logger: logger}
}

// GrantPermission gives the user every named permission. All names must be
// defined in the catalog; nothing is granted if one is not. Granting a
// permission the user already holds is harmless.
func (s *AccessService) GrantPermission(ctx context.Context, user *model.User, names ...string) error {
	if user == nil {
		return ErrUserRequired
	}
	if len(names) == 0 {
		return nil
	}

	for _, name := range names {
		ok, err := s.store.PermissionExists(ctx, name)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPermission, name)
		}
	}

	if err := s.store.AddPermissions(ctx, user.ID, names); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "permissions granted",
		slog.String("user_id", user.ID),
		slog.Any("permissions", names),
	)
	return nil
}

// AssignRole gives the user the named role
func (s *AccessService) AssignRole(ctx context.Context, user *model.User, name string) error {
	if user == nil {
		return ErrUserRequired
	}

	ok, err := s.store.RoleExists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRole, name)
	}

	if err := s.store.AddRole(ctx, user.ID, name); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "role assigned",
		slog.String("user_id", user.ID),
		slog.String("role", name),
	)
	return nil
}

// HasRole checks the given user value, not the store. Reload with Refresh
// after a grant to observe it.
func (s *AccessService) HasRole(_ context.Context, user *model.User, name string) (bool, error) {
	if user == nil {
		return false, ErrUserRequired
	}
	return user.HasRole(name), nil
}

// HasPermission checks the given user value, not the store
func (s *AccessService) HasPermission(_ context.Context, user *model.User, name string) (bool, error) {
	if user == nil {
		return false, ErrUserRequired
	}
	return user.HasPermission(name), nil
}

// Refresh reloads the user from the store
func (s *AccessService) Refresh(ctx context.Context, user *model.User) (*model.User, error) {
	if user == nil {
		return nil, ErrUserRequired
	}

	fresh, err := s.store.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, user.ID)
	}
	return fresh, nil
}
