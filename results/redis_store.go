package results

import (
	"encoding/json"
	"fmt"
	"github.com/go-redis/redis/v7"
	"time"
)

const redisKeyPrefix = "run:"

// RedisStore persists runs as JSON values in Redis so results survive
// worker restarts and are visible to every API replica.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to the given Redis instance. Saved runs expire
// after ttl; a zero ttl keeps them until Redis evicts them.
func NewRedisStore(addr string, password string, db int, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func (s *RedisStore) Save(result *RunResult) error {
	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("RedisStore.Save() could not marshal run %s: %w", result.ID, err)
	}

	if err := s.client.Set(redisKeyPrefix+result.ID, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("RedisStore.Save() got err when calling Set(): %w", err)
	}
	return nil
}

func (s *RedisStore) Get(id string) (*RunResult, error) {
	b, err := s.client.Get(redisKeyPrefix + id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("RedisStore.Get() got err when calling Get(): %w", err)
	}

	var result RunResult
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, fmt.Errorf("RedisStore.Get() could not unmarshal run %s: %w", id, err)
	}
	return &result, nil
}
