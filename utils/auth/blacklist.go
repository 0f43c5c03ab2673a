package auth

import (
	"context"
	"time"
)

const revokedKeyPrefix = "jwt:revoked:"

// RevocationStore is the part of the Redis cache the blacklist needs
type RevocationStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// BlacklistService handles JWT token revocation
type BlacklistService struct {
	store RevocationStore
}

// NewBlacklistService creates a new blacklist service
func NewBlacklistService(store RevocationStore) *BlacklistService {
	return &BlacklistService{store: store}
}

// RevokeToken blacklists jti until the token would have expired anyway
func (s *BlacklistService) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.store.Set(ctx, revokedKeyPrefix+jti, "revoked", ttl)
}

// IsTokenRevoked checks if a token is in the blacklist
func (s *BlacklistService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return s.store.Exists(ctx, revokedKeyPrefix+jti)
}
