package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smartauth/auth-service/internal/core/domain"
)

// stubUserRepo is an in-memory UserRepository keyed by username, mirroring
// the store's unique constraint.
type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrDuplicateUsername
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) AddRole(_ context.Context, userID, roleID string) error {
	for _, u := range r.users {
		if u.ID != userID {
			continue
		}
		for _, held := range u.Roles {
			if held.ID == roleID {
				return nil
			}
		}
		u.Roles = append(u.Roles, domain.Role{ID: roleID, Name: roleID})
		return nil
	}
	return domain.ErrUserNotFound
}

// stubRoleRepo is an in-memory RoleRepository keyed by name.
type stubRoleRepo struct {
	roles map[string]*domain.Role
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[string]*domain.Role)}
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) Ensure(_ context.Context, name string) (*domain.Role, error) {
	if role, ok := r.roles[name]; ok {
		clone := *role
		return &clone, nil
	}
	role := &domain.Role{ID: name, Name: name, CreatedAt: time.Now().UTC()}
	r.roles[name] = role
	clone := *role
	return &clone, nil
}

// stubCredentialCache records verification marks in memory.
type stubCredentialCache struct {
	keys   map[string]bool
	hits   int
	misses int
}

func newStubCredentialCache() *stubCredentialCache {
	return &stubCredentialCache{keys: make(map[string]bool)}
}

func (c *stubCredentialCache) IsVerified(_ context.Context, key string) (bool, error) {
	if c.keys[key] {
		c.hits++
		return true, nil
	}
	c.misses++
	return false, nil
}

func (c *stubCredentialCache) MarkVerified(_ context.Context, key string) error {
	c.keys[key] = true
	return nil
}
