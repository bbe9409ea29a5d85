package ports

import "context"

// UserService exposes privileged user administration operations.
type UserService interface {
	AssignRole(ctx context.Context, userID, roleName string) error
}
