package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tarpaulin/tarpaulin/pkg/domain/ratelimit"
	"github.com/tarpaulin/tarpaulin/pkg/infra/cache"
)

type bucketRedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewBucketRedisStore keeps bucket fields in a redis hash per client. Keys
// expire after ttl so idle buckets are evicted and rebuilt from defaults.
func NewBucketRedisStore(client *redis.Client, ttl time.Duration) ratelimit.Store {
	return &bucketRedisStore{redis: client, ttl: ttl}
}

func (s *bucketRedisStore) GetFields(ctx context.Context, key string) (map[string]string, error) {
	fields, err := s.redis.HGetAll(ctx, fmt.Sprintf(cache.RateLimitKeyPattern, key)).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall bucket %s: %w", key, err)
	}
	return fields, nil
}

func (s *bucketRedisStore) SetFields(ctx context.Context, key string, fields map[string]string) error {
	redisKey := fmt.Sprintf(cache.RateLimitKeyPattern, key)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	values := make([]interface{}, 0, len(fields)*2)
	for _, name := range names {
		values = append(values, name, fields[name])
	}

	pipe := s.redis.TxPipeline()
	pipe.HSet(ctx, redisKey, values...)
	if s.ttl > 0 {
		pipe.PExpire(ctx, redisKey, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("hset bucket %s: %w", key, err)
	}
	return nil
}
