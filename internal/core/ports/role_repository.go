package ports

import (
	"context"

	"github.com/smartauth/auth-service/internal/core/domain"
)

// RoleRepository defines the interface for role persistence.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	// Ensure looks up a role by name, creating it when absent. Idempotent:
	// concurrent callers converge on a single stored role.
	Ensure(ctx context.Context, name string) (*domain.Role, error)
}
