package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/forgo/gatekeeper/internal/database"
	"github.com/forgo/gatekeeper/internal/model"
	"github.com/google/uuid"
)

// MemoryStore is an in-process user and access store. Reads return copies,
// so a caller only sees grants made after its last read by reloading.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[string]*model.User
	emailIndex  map[string]string
	roles       map[string]struct{}
	permissions map[string]struct{}
	now         func() time.Time
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[string]*model.User),
		emailIndex:  make(map[string]string),
		roles:       make(map[string]struct{}),
		permissions: make(map[string]struct{}),
		now:         time.Now,
	}
}

// Create stores a copy of the user and assigns it an ID
func (s *MemoryStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(user.Email))
	if _, taken := s.emailIndex[email]; taken {
		return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
	}

	now := s.now()
	user.ID = "user:" + uuid.NewString()
	user.Email = email
	if user.Profile == "" {
		user.Profile = model.ProfileMember
	}
	user.Roles = []string{}
	user.Permissions = []string{}
	user.CreatedOn = now
	user.UpdatedOn = now

	s.users[user.ID] = cloneUser(user)
	s.emailIndex[email] = user.ID
	return nil
}

// GetByID returns a copy of the user, or nil if absent
func (s *MemoryStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

// GetByEmail returns a copy of the user with the email, or nil if absent
func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	id, ok := s.emailIndex[strings.ToLower(strings.TrimSpace(email))]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return s.GetByID(ctx, id)
}

// DefineRole adds a role to the catalog
func (s *MemoryStore) DefineRole(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[name] = struct{}{}
	return nil
}

// DefinePermission adds a permission to the catalog
func (s *MemoryStore) DefinePermission(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permissions[name] = struct{}{}
	return nil
}

// RoleExists reports whether the role is in the catalog
func (s *MemoryStore) RoleExists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.roles[name]
	return ok, nil
}

// PermissionExists reports whether the permission is in the catalog
func (s *MemoryStore) PermissionExists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.permissions[name]
	return ok, nil
}

// AddRole records the role on the user
func (s *MemoryStore) AddRole(_ context.Context, userID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("%w: %s", database.ErrNotFound, userID)
	}
	if !slices.Contains(u.Roles, role) {
		u.Roles = append(u.Roles, role)
	}
	u.UpdatedOn = s.now()
	return nil
}

// AddPermissions records the permissions on the user
func (s *MemoryStore) AddPermissions(_ context.Context, userID string, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("%w: %s", database.ErrNotFound, userID)
	}
	for _, name := range names {
		if !slices.Contains(u.Permissions, name) {
			u.Permissions = append(u.Permissions, name)
		}
	}
	u.UpdatedOn = s.now()
	return nil
}

func cloneUser(u *model.User) *model.User {
	cp := *u
	if u.Hash != nil {
		h := *u.Hash
		cp.Hash = &h
	}
	cp.Roles = slices.Clone(u.Roles)
	cp.Permissions = slices.Clone(u.Permissions)
	return &cp
}
