package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/diagnosis/parkingpro/internal/domain"
)

// expiredRetention keeps an expired entry readable for a while so Verify can
// still answer "expired" instead of "not found".
const expiredRetention = time.Hour

// RedisStore shares codes across instances.
type RedisStore struct {
	client *redis.Client
	now    domain.Clock
}

func NewRedisStore(client *redis.Client, now domain.Clock) *RedisStore {
	if now == nil {
		now = time.Now
	}
	return &RedisStore{client: client, now: now}
}

// NewRedisClient builds a client from a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (s *RedisStore) Put(ctx context.Context, email string, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	ttl := e.ExpiresAt.Sub(s.now()) + expiredRetention
	if ttl <= 0 {
		ttl = expiredRetention
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.client.Set(ctx, otpKey(email), payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, email string) (Entry, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	data, err := s.client.Get(ctx, otpKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false, fmt.Errorf("corrupt otp entry: %w", err)
	}
	return e, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.client.Del(ctx, otpKey(email)).Err()
}

func otpKey(email string) string {
	return "otp:" + email
}

var _ Store = (*RedisStore)(nil)
