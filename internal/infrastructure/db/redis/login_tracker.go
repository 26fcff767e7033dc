package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cmsbridge/restapi/internal/core/domain"
)

const (
	fieldLoginTime     = "login_time"
	fieldLastLoginTime = "last_login_time"
)

// hashClient is the part of *redis.Client the tracker uses.
type hashClient interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// LoginTracker records login times per member.
// Key format: member:<user_id>  fields: login_time, last_login_time (RFC3339)
type LoginTracker struct {
	client hashClient
	now    func() time.Time
}

// NewLoginTracker creates a LoginTracker wrapping the given Redis client.
func NewLoginTracker(client *redis.Client) *LoginTracker {
	return &LoginTracker{client: client, now: time.Now}
}

// AfterLogin moves the previous login time to last_login_time and stamps
// the current one. A first login sets both to now.
func (t *LoginTracker) AfterLogin(ctx context.Context, user *domain.User, _ *domain.AuthRequest) error {
	key := t.key(user.ID)
	now := t.now().UTC().Format(time.RFC3339)

	previous, err := t.client.HGet(ctx, key, fieldLoginTime).Result()
	if errors.Is(err, redis.Nil) {
		previous = now
	} else if err != nil {
		return fmt.Errorf("read login time: %w", err)
	}

	if err := t.client.HSet(ctx, key, fieldLastLoginTime, previous, fieldLoginTime, now).Err(); err != nil {
		return fmt.Errorf("record login time: %w", err)
	}
	return nil
}

func (t *LoginTracker) key(userID string) string {
	return fmt.Sprintf("member:%s", userID)
}
