package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartauth/auth-service/internal/api/metrics"
)

const verifyTTL = 5 * time.Minute

// CredentialCache remembers recent successful password verifications so hot
// Basic-auth clients do not pay the bcrypt cost on every request.
// Key format: verify:<caller-derived digest key>
type CredentialCache struct {
	client *redis.Client
}

// NewCredentialCache creates a CredentialCache wrapping the given Redis client.
func NewCredentialCache(client *redis.Client) *CredentialCache {
	return &CredentialCache{client: client}
}

// IsVerified reports whether this credential pair was recently verified.
func (c *CredentialCache) IsVerified(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("credential cache check: %w", err)
	}
	if n > 0 {
		metrics.CredentialCacheTotal.WithLabelValues("hit").Inc()
		return true, nil
	}
	metrics.CredentialCacheTotal.WithLabelValues("miss").Inc()
	return false, nil
}

// MarkVerified records a successful verification (expires after verifyTTL).
func (c *CredentialCache) MarkVerified(ctx context.Context, key string) error {
	return c.client.Set(ctx, c.key(key), "1", verifyTTL).Err()
}

func (c *CredentialCache) key(key string) string {
	return "verify:" + key
}
