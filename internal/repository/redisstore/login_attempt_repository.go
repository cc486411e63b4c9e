package redisstore

import (
	"context"
	"errors"
	"time"

	"ai-workspace-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const loginAttemptPrefix = "login_attempts:"

// LoginAttemptRepository shares failure counters across instances.
type LoginAttemptRepository struct {
	client *redis.Client
}

func NewLoginAttemptRepository(client *redis.Client) contract.LoginAttemptRepository {
	return &LoginAttemptRepository{client: client}
}

func (r *LoginAttemptRepository) Failures(ctx context.Context, key string) (int, error) {
	n, err := r.client.Get(ctx, loginAttemptPrefix+key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (r *LoginAttemptRepository) RecordFailure(ctx context.Context, key string, window time.Duration) (int, error) {
	k := loginAttemptPrefix + key
	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, k, window).Err(); err != nil {
			return int(n), err
		}
	}
	return int(n), nil
}

func (r *LoginAttemptRepository) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, loginAttemptPrefix+key).Err()
}
