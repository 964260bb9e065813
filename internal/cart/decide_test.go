package cart

import (
	"errors"
	"math"
	"testing"
)

func TestDecideIncrement(t *testing.T) {
	c := Cart{{ID: 5, Amount: 1}}

	tests := []struct {
		name    string
		id      int
		stock   int
		want    int
		wantErr error
	}{
		{name: "enough stock", id: 5, stock: 10, want: 2},
		{name: "exactly enough", id: 5, stock: 2, want: 2},
		{name: "out of stock", id: 5, stock: 1, wantErr: ErrOutOfStock},
		{name: "negative stock", id: 5, stock: -2, wantErr: ErrOutOfStock},
		{name: "not in cart", id: 7, stock: 10, wantErr: ErrProductNotInCart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecideIncrement(c, tt.id, Stock{ID: tt.id, Amount: tt.stock})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v want=%v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("amount=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestDecideAppend(t *testing.T) {
	c := Cart{{ID: 1, Amount: 2}}

	next, err := DecideAppend(c, Product{ID: 5, Title: "Sneaker", Amount: 40}, Stock{ID: 5, Amount: 1})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(next) != 2 || next[1].ID != 5 || next[1].Amount != 1 {
		t.Fatalf("next=%+v", next)
	}
	if len(c) != 1 {
		t.Fatalf("input mutated: %+v", c)
	}

	if _, err := DecideAppend(c, Product{ID: 5}, Stock{ID: 5, Amount: 0}); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("zero stock err=%v", err)
	}
	if _, err := DecideAppend(c, Product{ID: 1}, Stock{ID: 1, Amount: 9}); err == nil {
		t.Fatalf("duplicate append must fail")
	}
}

func TestDecideRemove(t *testing.T) {
	c := Cart{{ID: 1, Amount: 1}, {ID: 5, Amount: 3}, {ID: 9, Amount: 1}}

	next, err := DecideRemove(c, 5)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(next) != 2 || next[0].ID != 1 || next[1].ID != 9 {
		t.Fatalf("next=%+v", next)
	}
	if len(c) != 3 {
		t.Fatalf("input mutated")
	}

	if _, err := DecideRemove(Cart{}, 99); !errors.Is(err, ErrProductNotInCart) {
		t.Fatalf("absent err=%v", err)
	}
}

func TestDecideUpdate(t *testing.T) {
	c := Cart{{ID: 5, Amount: 2}}

	next, err := DecideUpdate(c, 5, 4, Stock{ID: 5, Amount: 4})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if next[0].Amount != 4 {
		t.Fatalf("amount=%d", next[0].Amount)
	}
	if c[0].Amount != 2 {
		t.Fatalf("input mutated: %+v", c)
	}

	if _, err := DecideUpdate(c, 5, 5, Stock{ID: 5, Amount: 4}); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("over stock err=%v", err)
	}
	if _, err := DecideUpdate(c, 6, 1, Stock{ID: 6, Amount: 4}); !errors.Is(err, ErrProductNotInCart) {
		t.Fatalf("absent err=%v", err)
	}
	if _, err := DecideUpdate(c, 5, 0, Stock{ID: 5, Amount: 4}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount err=%v", err)
	}
	if _, err := DecideUpdate(c, 5, math.MaxInt, Stock{ID: 5, Amount: -2}); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("huge amount with negative stock err=%v", err)
	}
}

func TestCartValidate(t *testing.T) {
	if err := (Cart{{ID: 1, Amount: 1}, {ID: 2, Amount: 3}}).Validate(); err != nil {
		t.Fatalf("valid cart: %v", err)
	}
	if err := (Cart{{ID: 1, Amount: 1}, {ID: 1, Amount: 3}}).Validate(); !errors.Is(err, errDuplicateID) {
		t.Fatalf("duplicate err=%v", err)
	}
	if err := (Cart{{ID: 1, Amount: 0}}).Validate(); !errors.Is(err, errNonPositive) {
		t.Fatalf("zero amount err=%v", err)
	}
}

func TestOutcomeText(t *testing.T) {
	for o := OutcomeNoop; o <= OutcomeUpdateFailed; o++ {
		b, err := o.MarshalText()
		if err != nil {
			t.Fatalf("marshal %d: %v", o, err)
		}
		var back Outcome
		if err := back.UnmarshalText(b); err != nil || back != o {
			t.Fatalf("round trip %s: got=%v err=%v", b, back, err)
		}
	}
	if OutcomeOutOfStock.OK() || !OutcomeAdded.OK() {
		t.Fatalf("OK() mismatch")
	}
}
