package ports

import (
	"context"

	"github.com/smartauth/auth-service/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// AddRole adds a role reference to the user's role set. Adding a role the
	// user already holds is a no-op.
	AddRole(ctx context.Context, userID, roleID string) error
}
