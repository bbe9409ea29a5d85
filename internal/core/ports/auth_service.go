package ports

import (
	"context"

	"github.com/smartauth/auth-service/internal/core/domain"
)

// AuthService implements registration and per-request credential verification.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}
