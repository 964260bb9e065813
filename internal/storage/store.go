// Package storage holds the durable key-value stores a cart can be persisted to.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// KV is a string key-value store with whole-value overwrite semantics.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

type Options struct {
	// Driver is one of memory, file, redis, postgres.
	Driver    string
	FilePath  string
	RedisAddr string
	DSN       string
}

// Open builds the store named by opts.Driver and checks that it is reachable.
// The returned close func is never nil.
func Open(ctx context.Context, opts Options, log *zap.Logger) (KV, func() error, error) {
	noop := func() error { return nil }

	switch opts.Driver {
	case "", "memory":
		return NewMemStore(), noop, nil

	case "file":
		s := NewFileStore(opts.FilePath)
		if err := s.Ping(ctx); err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case "redis":
		s := NewRedisStore(opts.RedisAddr, log)
		if err := s.Connect(ctx); err != nil {
			_ = s.Close()
			return nil, noop, err
		}
		return s, s.Close, nil

	case "postgres":
		db, err := OpenPostgres(opts.DSN)
		if err != nil {
			return nil, noop, err
		}
		s := NewPostgresStore(db)
		if err := s.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return s, db.Close, nil
	}

	return nil, noop, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
}
