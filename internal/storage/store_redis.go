package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	redisConnectAttempts = 10
	redisMaxBackoff      = 10 * time.Second
)

type RedisStore struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedisStore accepts either a redis:// URL or a plain host:port address.
func NewRedisStore(addr string, log *zap.Logger) *RedisStore {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
		}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisStore{client: redis.NewClient(opts), log: log}
}

// Connect pings until redis answers, backing off exponentially between attempts.
func (s *RedisStore) Connect(ctx context.Context) error {
	backoff := 250 * time.Millisecond
	for i := 1; i <= redisConnectAttempts; i++ {
		err := s.Ping(ctx)
		if err == nil {
			s.log.Info("redis connected", zap.Int("attempt", i))
			return nil
		}
		s.log.Warn("redis ping failed", zap.Int("attempt", i), zap.Duration("backoff", backoff), zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > redisMaxBackoff {
			backoff = redisMaxBackoff
		}
	}
	return fmt.Errorf("redis not reachable after %d attempts", redisConnectAttempts)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.client.Ping(ctx).Err()
	})
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		var err error
		v, err = s.client.Get(ctx, key).Result()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.client.Set(ctx, key, value, 0).Err()
	})
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
