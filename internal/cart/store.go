package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// StockService is the remote collaborator consulted before every add and update.
type StockService interface {
	GetStock(ctx context.Context, productID int) (Stock, error)
	GetProduct(ctx context.Context, productID int) (Product, error)
}

type Deps struct {
	Stock   StockService
	Storage Storage
	// Key defaults to DefaultKey.
	Key string

	Notifier Notifier
	// Messages defaults to EnglishMessages.
	Messages *Messages
	Metrics  *Metrics
	Log      *zap.Logger
}

// Store owns one cart. Operations on the same product are serialized; operations on
// different products may interleave their stock fetches but commit one at a time
// against the latest cart.
type Store struct {
	stock    StockService
	storage  Storage
	key      string
	notifier Notifier
	messages Messages
	metrics  *Metrics
	log      *zap.Logger

	locks keyedMutex

	mu       sync.RWMutex
	cart     Cart
	hydrated bool
}

// New builds a store and hydrates it from storage. If the read fails the store starts
// unhydrated: Cart reports empty and every mutation retries hydration first, failing
// as transient until the read succeeds.
func New(ctx context.Context, deps Deps) *Store {
	s := &Store{
		stock:    deps.Stock,
		storage:  deps.Storage,
		key:      deps.Key,
		notifier: deps.Notifier,
		messages: EnglishMessages,
		metrics:  deps.Metrics,
		log:      deps.Log,
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if deps.Messages != nil {
		s.messages = *deps.Messages
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	s.cart = Cart{}
	if err := s.Hydrate(ctx); err != nil {
		s.log.Warn("cart hydration failed, will retry", zap.String("key", s.key), zap.Error(err))
	}
	return s
}

// Hydrate loads the persisted cart if that has not happened yet.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.RLock()
	done := s.hydrated
	s.mu.RUnlock()
	if done {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hydrated {
		return nil
	}

	c, err := Load(ctx, s.storage, s.key, s.log)
	if err != nil {
		return err
	}
	s.cart, s.hydrated = c, true
	s.log.Debug("cart hydrated", zap.String("key", s.key), zap.Int("entries", len(c)))
	return nil
}

// Cart returns a copy of the current cart.
func (s *Store) Cart() Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

func (s *Store) Add(ctx context.Context, productID int) Outcome {
	unlock := s.locks.Lock(productID)
	defer unlock()

	if err := s.Hydrate(ctx); err != nil {
		return s.finish(ctx, opAdd, productID, OutcomeAddFailed, err)
	}
	out, err := s.add(ctx, productID)
	return s.finish(ctx, opAdd, productID, out, err)
}

func (s *Store) Remove(ctx context.Context, productID int) Outcome {
	unlock := s.locks.Lock(productID)
	defer unlock()

	if err := s.Hydrate(ctx); err != nil {
		return s.finish(ctx, opRemove, productID, OutcomeRemoveFailed, err)
	}
	err := s.commit(ctx, func(cur Cart) (Cart, error) {
		return DecideRemove(cur, productID)
	})
	if err != nil {
		return s.finish(ctx, opRemove, productID, outcomeOf(opRemove, err), err)
	}
	return s.finish(ctx, opRemove, productID, OutcomeRemoved, nil)
}

// UpdateAmount sets the amount of an entry already in the cart. A non-positive amount
// is ignored without notification; use Remove to drop an entry.
func (s *Store) UpdateAmount(ctx context.Context, productID, amount int) Outcome {
	if amount <= 0 {
		return s.finish(ctx, opUpdate, productID, OutcomeNoop, nil)
	}

	unlock := s.locks.Lock(productID)
	defer unlock()

	if err := s.Hydrate(ctx); err != nil {
		return s.finish(ctx, opUpdate, productID, OutcomeUpdateFailed, err)
	}
	out, err := s.update(ctx, productID, amount)
	return s.finish(ctx, opUpdate, productID, out, err)
}

func (s *Store) add(ctx context.Context, productID int) (Outcome, error) {
	snapshot := s.Cart()

	stock, err := s.stock.GetStock(ctx, productID)
	if err != nil {
		return OutcomeAddFailed, fmt.Errorf("%w: get stock: %w", ErrTransient, err)
	}

	if _, ok := snapshot.Find(productID); ok {
		target, err := DecideIncrement(snapshot, productID, stock)
		if err != nil {
			return outcomeOf(opAdd, err), err
		}
		return s.update(ctx, productID, target)
	}

	p, err := s.stock.GetProduct(ctx, productID)
	if err != nil {
		return OutcomeAddFailed, fmt.Errorf("%w: get product: %w", ErrTransient, err)
	}
	p.ID = productID

	if err := s.commit(ctx, func(cur Cart) (Cart, error) {
		return DecideAppend(cur, p, stock)
	}); err != nil {
		return outcomeOf(opAdd, err), err
	}
	return OutcomeAdded, nil
}

func (s *Store) update(ctx context.Context, productID, amount int) (Outcome, error) {
	if _, ok := s.Cart().Find(productID); !ok {
		return OutcomeUpdateFailed, ErrProductNotInCart
	}

	stock, err := s.stock.GetStock(ctx, productID)
	if err != nil {
		return OutcomeUpdateFailed, fmt.Errorf("%w: get stock: %w", ErrTransient, err)
	}

	if err := s.commit(ctx, func(cur Cart) (Cart, error) {
		return DecideUpdate(cur, productID, amount, stock)
	}); err != nil {
		return outcomeOf(opUpdate, err), err
	}
	return OutcomeUpdated, nil
}

// commit applies decide to the latest cart, persists the result and only then swaps
// it in. A failed write leaves the cart as it was.
func (s *Store) commit(ctx context.Context, decide func(Cart) (Cart, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hydrated {
		return fmt.Errorf("%w: cart not hydrated", ErrTransient)
	}
	next, err := decide(s.cart)
	if err != nil {
		return err
	}
	if err := persist(ctx, s.storage, s.key, next); err != nil {
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}

	s.cart = next
	return nil
}

func (s *Store) finish(ctx context.Context, o op, productID int, out Outcome, err error) Outcome {
	s.metrics.observe(o, out)

	switch {
	case err == nil:
		s.log.Debug("cart operation",
			zap.String("op", string(o)),
			zap.Int("product_id", productID),
			zap.Stringer("outcome", out),
		)
	case errors.Is(err, ErrTransient):
		s.log.Warn("cart operation failed",
			zap.String("op", string(o)),
			zap.Int("product_id", productID),
			zap.Stringer("outcome", out),
			zap.Error(err),
		)
	default:
		s.log.Debug("cart operation rejected",
			zap.String("op", string(o)),
			zap.Int("product_id", productID),
			zap.Stringer("outcome", out),
			zap.Error(err),
		)
	}

	if n, ok := s.messages.notification(out, productID, err); ok {
		Notifiers{s.notifier, notifierFromContext(ctx)}.Notify(ctx, n)
	}
	return out
}

type keyedMutex struct {
	mu sync.Mutex
	m  map[int]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

// Lock blocks until id is free and returns the matching unlock.
func (k *keyedMutex) Lock(id int) func() {
	k.mu.Lock()
	if k.m == nil {
		k.m = make(map[int]*refMutex)
	}
	e, ok := k.m[id]
	if !ok {
		e = &refMutex{}
		k.m[id] = e
	}
	e.refs++
	k.mu.Unlock()

	e.Lock()
	return func() {
		e.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.m, id)
		}
		k.mu.Unlock()
	}
}
