package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/event-registration-api/utils/response"
)

// AttemptStore is the part of the Redis cache that tracks login attempts
type AttemptStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// BruteForceProtection handles brute force protection using Redis
type BruteForceProtection struct {
	store AttemptStore
}

// NewBruteForceProtection creates a new brute force protection instance
func NewBruteForceProtection(store AttemptStore) *BruteForceProtection {
	return &BruteForceProtection{
		store: store,
	}
}

func attemptKey(ip string) string { return fmt.Sprintf("brute_force:attempts:%s", ip) }

func lockKey(ip string) string { return fmt.Sprintf("brute_force:lock:%s", ip) }

// CheckAndRecordAttempt middleware rejects requests from locked out IPs
func (b *BruteForceProtection) CheckAndRecordAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		ctx := c.UserContext()

		// Check if IP is locked
		locked, err := b.store.Exists(ctx, lockKey(ip))
		if err != nil {
			// Don't block legitimate users due to cache issues
			log.Warnf("Brute force check skipped: %v", err)
			return c.Next()
		}

		if locked {
			// Get TTL for retry time
			ttl, _ := b.store.TTL(ctx, lockKey(ip))
			retryAfter := int(ttl.Seconds())
			if retryAfter <= 0 {
				retryAfter = 60
			}

			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c, fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}

// RecordFailedAttempt records a failed login attempt and applies progressive lockouts
func (b *BruteForceProtection) RecordFailedAttempt(ctx context.Context, ip string) {
	// Increment attempt counter
	attempts, err := b.store.Increment(ctx, attemptKey(ip))
	if err != nil {
		log.Warnf("Failed to record login attempt: %v", err)
		return
	}

	// 15 minute window
	if attempts == 1 {
		b.store.Expire(ctx, attemptKey(ip), 15*time.Minute)
	}

	var lockDuration time.Duration
	switch {
	case attempts >= 25:
		lockDuration = 24 * time.Hour
	case attempts >= 10:
		lockDuration = time.Hour
	case attempts >= 5:
		lockDuration = 2 * time.Minute
	default:
		return
	}

	if err := b.store.Set(ctx, lockKey(ip), "locked", lockDuration); err != nil {
		log.Warnf("Failed to lock out %s: %v", ip, err)
	}
}

// RecordSuccessfulAttempt clears failed attempts on successful login
func (b *BruteForceProtection) RecordSuccessfulAttempt(ctx context.Context, ip string) {
	if err := b.store.Delete(ctx, attemptKey(ip), lockKey(ip)); err != nil {
		log.Warnf("Failed to clear login attempts: %v", err)
	}
}
