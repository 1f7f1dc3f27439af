package flash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"groomer-portal/internal/ports/notify"
)

var ErrEmptyKey = errors.New("flash: empty key")

// DefaultTTL limita cuánto vive un flash que nadie leyó.
const DefaultTTL = 5 * time.Minute

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore conecta y hace ping, igual que el cliente de cache del gateway.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("flash: redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb, ttl: DefaultTTL}, nil
}

func redisKey(key string) string {
	return "flash:" + key
}

func (s *RedisStore) Push(ctx context.Context, key string, notices []notify.Notice) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	if len(notices) == 0 {
		return nil
	}

	values := make([]any, 0, len(notices))
	for _, n := range notices {
		b, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("flash: marshal: %w", err)
		}
		values = append(values, b)
	}

	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, redisKey(key), values...)
	pipe.Expire(ctx, redisKey(key), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("flash: push: %w", err)
	}
	return nil
}

func (s *RedisStore) Pop(ctx context.Context, key string) ([]notify.Notice, error) {
	out := []notify.Notice{}
	if strings.TrimSpace(key) == "" {
		return out, nil
	}

	pipe := s.rdb.TxPipeline()
	rng := pipe.LRange(ctx, redisKey(key), 0, -1)
	pipe.Del(ctx, redisKey(key))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("flash: pop: %w", err)
	}

	for _, raw := range rng.Val() {
		var n notify.Notice
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			// entrada corrupta: se descarta
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
