package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartauth/auth-service/internal/core/domain"
	"github.com/smartauth/auth-service/internal/core/ports"
)

// AuthService implements registration and stateless credential verification.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	cache  ports.CredentialCache
	logger zerolog.Logger
}

// NewAuthService builds an AuthService. cache may be nil, in which case every
// authentication pays the full bcrypt comparison.
func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, cache ports.CredentialCache, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, roles: roles, cache: cache, logger: logger}
}

// Register creates a new enabled user holding exactly the default ROLE_USER
// role. The plaintext password is bcrypt-hashed and never stored.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	// Friendly pre-check; the unique index on username is the real guard
	// under concurrent duplicate registrations.
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	role, err := s.roles.FindByName(ctx, domain.RoleUser)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			s.logger.Error().Str("role", domain.RoleUser).Msg("default role missing: provisioning did not run")
			return nil, domain.ErrRoleNotProvisioned
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Enabled:      true,
		Roles:        []domain.Role{*role},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Authenticate verifies username/password credentials and returns the
// principal. Unknown usernames, disabled accounts and digest mismatches all
// collapse to ErrInvalidCredentials so the response does not reveal which
// part failed.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Enabled {
		return nil, domain.ErrInvalidCredentials
	}

	key := verifyKey(user.PasswordHash, password)
	if s.cache != nil {
		if ok, err := s.cache.IsVerified(ctx, key); err == nil && ok {
			return user, nil
		}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if s.cache != nil {
		if err := s.cache.MarkVerified(ctx, key); err != nil {
			// Cache unavailability must not fail an otherwise valid login.
			s.logger.Debug().Err(err).Msg("credential cache write failed")
		}
	}

	return user, nil
}

// verifyKey derives the cache key from the stored digest and the presented
// password. Rotating the digest invalidates every prior entry.
func verifyKey(storedHash, password string) string {
	sum := sha256.Sum256([]byte(storedHash + ":" + password))
	return hex.EncodeToString(sum[:])
}
