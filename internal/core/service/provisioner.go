package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartauth/auth-service/internal/core/domain"
	"github.com/smartauth/auth-service/internal/core/ports"
)

const seedAdminUsername = "admin"

// Provisioner creates the baseline roles and the initial admin account.
// Seed runs at startup before the server accepts traffic; it is idempotent
// across restarts and safe under multiple instances sharing a store, because
// every check is backed by a store-level unique constraint.
type Provisioner struct {
	users         ports.UserRepository
	roles         ports.RoleRepository
	adminPassword string
	logger        zerolog.Logger
}

func NewProvisioner(users ports.UserRepository, roles ports.RoleRepository, adminPassword string, logger zerolog.Logger) *Provisioner {
	return &Provisioner{users: users, roles: roles, adminPassword: adminPassword, logger: logger}
}

// EnsureRole looks up a role by exact name, creating it when absent. Calling
// it twice with the same name yields the same stored role.
func (p *Provisioner) EnsureRole(ctx context.Context, name string) (*domain.Role, error) {
	return p.roles.Ensure(ctx, name)
}

// Seed ensures ROLE_ADMIN and ROLE_USER exist, then creates the "admin" user
// with ROLE_ADMIN when no such user exists yet.
func (p *Provisioner) Seed(ctx context.Context) error {
	adminRole, err := p.EnsureRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("ensure role %s: %w", domain.RoleAdmin, err)
	}
	if _, err := p.EnsureRole(ctx, domain.RoleUser); err != nil {
		return fmt.Errorf("ensure role %s: %w", domain.RoleUser, err)
	}

	_, err = p.users.FindByUsername(ctx, seedAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("find seed admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := &domain.User{
		Username:     seedAdminUsername,
		PasswordHash: string(hash),
		Enabled:      true,
		Roles:        []domain.Role{*adminRole},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := p.users.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			// Another instance seeded first.
			return nil
		}
		return fmt.Errorf("create seed admin: %w", err)
	}

	p.logger.Info().Str("username", seedAdminUsername).Msg("seeded initial admin account")
	return nil
}
