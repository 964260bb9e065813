package cart

import "errors"

var (
	ErrOutOfStock       = errors.New("requested amount out of stock")
	ErrProductNotInCart = errors.New("product not in cart")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrTransient        = errors.New("transient failure")
)

// The Decide* functions hold the cart rules. They never touch storage, the network or
// notifications, and never alias their input.

// DecideIncrement returns the amount an add of an existing entry should set.
func DecideIncrement(c Cart, id int, stock Stock) (int, error) {
	p, ok := c.Find(id)
	if !ok {
		return 0, ErrProductNotInCart
	}

	target := p.Amount + 1
	if target > stock.Amount {
		return 0, ErrOutOfStock
	}
	return target, nil
}

// DecideAppend appends p with amount 1 when there is stock for it.
func DecideAppend(c Cart, p Product, stock Stock) (Cart, error) {
	if _, ok := c.Find(p.ID); ok {
		return nil, errAlreadyInCart
	}
	if stock.Amount <= 0 {
		return nil, ErrOutOfStock
	}

	p.Amount = 1
	next := make(Cart, 0, len(c)+1)
	next = append(next, c...)
	return append(next, p), nil
}

// DecideRemove drops the entry for id.
func DecideRemove(c Cart, id int) (Cart, error) {
	if _, ok := c.Find(id); !ok {
		return nil, ErrProductNotInCart
	}

	next := make(Cart, 0, len(c)-1)
	for _, p := range c {
		if p.ID != id {
			next = append(next, p)
		}
	}
	return next, nil
}

// DecideUpdate sets the amount of the entry for id if stock covers it.
func DecideUpdate(c Cart, id, amount int, stock Stock) (Cart, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, ok := c.Find(id); !ok {
		return nil, ErrProductNotInCart
	}
	if amount > stock.Amount {
		return nil, ErrOutOfStock
	}

	next := c.Clone()
	for i := range next {
		if next[i].ID == id {
			next[i].Amount = amount
		}
	}
	return next, nil
}
