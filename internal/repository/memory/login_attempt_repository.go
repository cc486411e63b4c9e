package memory

import (
	"context"
	"time"

	"ai-workspace-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// LoginAttemptRepository keeps failure counters in process memory. Used when
// Redis is not configured.
type LoginAttemptRepository struct {
	cache *cache.Cache
}

func NewLoginAttemptRepository() contract.LoginAttemptRepository {
	// Entries carry their own window; purge expired ones every 10 minutes
	c := cache.New(15*time.Minute, 10*time.Minute)
	return &LoginAttemptRepository{
		cache: c,
	}
}

func (r *LoginAttemptRepository) Failures(_ context.Context, key string) (int, error) {
	if x, found := r.cache.Get(key); found {
		return x.(int), nil
	}
	return 0, nil
}

func (r *LoginAttemptRepository) RecordFailure(_ context.Context, key string, window time.Duration) (int, error) {
	if err := r.cache.Add(key, 1, window); err == nil {
		return 1, nil
	}
	n, err := r.cache.IncrementInt(key, 1)
	if err != nil {
		// Expired between Add and Increment.
		r.cache.Set(key, 1, window)
		return 1, nil
	}
	return n, nil
}

func (r *LoginAttemptRepository) Reset(_ context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}
