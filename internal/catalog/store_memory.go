package catalog

import (
	"context"
	"sort"
	"sync"
)

type MemStore struct {
	mu       sync.RWMutex
	products map[int]Product
	stock    map[int]Stock
}

func NewMemStore(seed Seed) *MemStore {
	s := &MemStore{
		products: make(map[int]Product, len(seed.Products)),
		stock:    make(map[int]Stock, len(seed.Stock)),
	}
	for _, p := range seed.Products {
		s.products[p.ID] = p
	}
	for _, st := range seed.Stock {
		s.stock[st.ID] = st
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListProducts(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetProduct(ctx context.Context, id int) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p, ok, nil
}

func (s *MemStore) ListStock(ctx context.Context) ([]Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Stock, 0, len(s.stock))
	for _, st := range s.stock {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetStock(ctx context.Context, id int) (Stock, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stock[id]
	return st, ok, nil
}

// SetStock overwrites the available amount for id.
func (s *MemStore) SetStock(id, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[id] = Stock{ID: id, Amount: amount}
}
