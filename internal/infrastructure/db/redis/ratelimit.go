package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	attemptWindow = 15 * time.Minute
	maxAttempts   = 10
)

// LoginLimiter throttles failed login attempts per email, backed by Redis.
// Key format: login_attempts:<email>
type LoginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// TooManyAttempts reports whether the email has exceeded the failure budget
// inside the current window.
func (l *LoginLimiter) TooManyAttempts(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= maxAttempts, nil
}

// RecordFailure increments the failure counter. The window TTL starts on
// the first failure and is not extended by later ones.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, attemptWindow).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, l.key(email)).Err()
}

func (l *LoginLimiter) key(email string) string {
	return "login_attempts:" + email
}
