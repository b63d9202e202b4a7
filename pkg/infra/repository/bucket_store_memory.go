package repository

import (
	"context"

	"github.com/tarpaulin/tarpaulin/pkg/domain/ratelimit"
	"github.com/tarpaulin/tarpaulin/pkg/infra/cache"
)

type bucketMemoryStore struct {
	data *cache.TTLMap[map[string]string]
}

// NewBucketMemoryStore keeps buckets in process memory. Only suitable for a
// single instance.
func NewBucketMemoryStore(data *cache.TTLMap[map[string]string]) ratelimit.Store {
	return &bucketMemoryStore{data: data}
}

func (s *bucketMemoryStore) GetFields(_ context.Context, key string) (map[string]string, error) {
	stored, ok := s.data.Get(key)
	if !ok {
		return map[string]string{}, nil
	}
	out := make(map[string]string, len(stored))
	for k, v := range stored {
		out[k] = v
	}
	return out, nil
}

func (s *bucketMemoryStore) SetFields(_ context.Context, key string, fields map[string]string) error {
	merged := make(map[string]string, len(fields))
	if stored, ok := s.data.Get(key); ok {
		for k, v := range stored {
			merged[k] = v
		}
	}
	for k, v := range fields {
		merged[k] = v
	}
	s.data.Set(key, merged)
	return nil
}
