package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/smartauth/auth-service/internal/core/ports"
)

// UserService implements privileged user administration. Access control is
// enforced at the router (admin group), not here.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, logger: logger}
}

// AssignRole adds the named role to the user's role set. Re-assigning a role
// the user already holds is a no-op, not an error.
func (s *UserService) AssignRole(ctx context.Context, userID, roleName string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return err
	}

	if user.HasRole(role.Name) {
		s.logger.Debug().Str("user_id", userID).Str("role", roleName).Msg("role already held")
		return nil
	}

	if err := s.users.AddRole(ctx, user.ID, role.ID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("role", roleName).Msg("role assigned")
	return nil
}
