package ports

import "context"

// CredentialCache remembers recent successful password verifications so that
// repeat Basic-auth requests do not pay the full hash cost every time.
// Keys are opaque to the cache; the caller derives them from the stored
// digest, so a password change invalidates prior entries.
type CredentialCache interface {
	IsVerified(ctx context.Context, key string) (bool, error)
	MarkVerified(ctx context.Context, key string) error
}
