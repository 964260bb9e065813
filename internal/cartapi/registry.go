package cartapi

import (
	"context"
	"sync"

	"MiniCart/internal/cart"
	"MiniCart/internal/storage"
)

// Registry hands out one cart store per namespace, hydrating it on first use.
type Registry struct {
	// Deps is the template every store is built from; Key is the base key.
	Deps    cart.Deps
	Storage storage.KV

	mu     sync.Mutex
	stores map[string]*cart.Store
}

func NewRegistry(kv storage.KV, deps cart.Deps) *Registry {
	if deps.Key == "" {
		deps.Key = cart.DefaultKey
	}
	deps.Storage = kv
	return &Registry{Deps: deps, Storage: kv, stores: map[string]*cart.Store{}}
}

// Store returns the store for namespace. The empty namespace is the anonymous cart.
// Hydration runs outside the registry lock; if two callers race, the first insert wins.
func (g *Registry) Store(ctx context.Context, namespace string) *cart.Store {
	g.mu.Lock()
	s, ok := g.stores[namespace]
	g.mu.Unlock()
	if ok {
		return s
	}

	deps := g.Deps
	deps.Key = cart.Key(g.Deps.Key, namespace)
	fresh := cart.New(context.WithoutCancel(ctx), deps)

	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.stores[namespace]; ok {
		return s
	}
	g.stores[namespace] = fresh
	return fresh
}

func (g *Registry) Ping(ctx context.Context) error {
	return g.Storage.Ping(ctx)
}
