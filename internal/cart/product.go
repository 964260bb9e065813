package cart

import (
	"errors"
	"fmt"
)

// Product is a catalog entry as held in the cart. Amount is the quantity in the cart;
// the remaining fields are display attributes the cart never interprets.
type Product struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Amount int     `json:"amount"`
}

// Stock is the available quantity of a product as reported by the stock service.
type Stock struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

// Cart is an ordered list of products, unique by ID.
type Cart []Product

var (
	errDuplicateID   = errors.New("duplicate product id")
	errNonPositive   = errors.New("non-positive amount")
	errAlreadyInCart = errors.New("product already in cart")
)

// Find returns the entry for id and whether it exists.
func (c Cart) Find(id int) (Product, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Clone returns a copy that shares nothing with c. A nil cart clones to an empty one.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Validate checks the cart invariants: unique ids and positive amounts.
func (c Cart) Validate() error {
	seen := make(map[int]struct{}, len(c))
	for _, p := range c {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: %d", errDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Amount < 1 {
			return fmt.Errorf("%w: id=%d amount=%d", errNonPositive, p.ID, p.Amount)
		}
	}
	return nil
}
