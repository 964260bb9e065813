package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Storage is the durable key-value store the cart is persisted to.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// DefaultKey is the storage key the storefront has always used.
const DefaultKey = "@RocketShoes:cart"

// Key scopes the base key to a namespace. An empty namespace keeps the base key.
func Key(base, namespace string) string {
	if namespace == "" {
		return base
	}
	return base + ":" + namespace
}

func Encode(c Cart) (string, error) {
	if c == nil {
		c = Cart{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func Decode(raw string) (Cart, error) {
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		c = Cart{}
	}
	return c, nil
}

// Load reads the persisted cart under key. Missing or malformed data yields an empty
// cart, the latter with a warning. A failed read is returned as an error so callers
// never mistake an unreachable store for an empty cart.
func Load(ctx context.Context, st Storage, key string, log *zap.Logger) (Cart, error) {
	if log == nil {
		log = zap.NewNop()
	}

	raw, ok, err := st.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: read cart: %w", ErrTransient, err)
	}
	if !ok || raw == "" {
		return Cart{}, nil
	}

	c, err := Decode(raw)
	if err != nil {
		log.Warn("malformed persisted cart, starting empty", zap.String("key", key), zap.Error(err))
		return Cart{}, nil
	}
	return c, nil
}

func persist(ctx context.Context, st Storage, key string, c Cart) error {
	raw, err := Encode(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := st.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}
