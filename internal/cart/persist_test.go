package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"MiniCart/internal/cart"
	"MiniCart/internal/storage"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := cart.Cart{
		{ID: 1, Title: "Tênis de Caminhada", Price: 179.9, Image: "https://cdn/1.jpg", Amount: 2},
		{ID: 5, Title: "Tênis VR", Price: 139.9, Image: "https://cdn/5.jpg", Amount: 1},
	}

	raw, err := cart.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := cart.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	raw, err := cart.Encode(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if raw != "[]" {
		t.Fatalf("raw=%q", raw)
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		raw  *string
		want cart.Cart
	}{
		{name: "absent", raw: nil, want: cart.Cart{}},
		{name: "empty string", raw: ptr(""), want: cart.Cart{}},
		{name: "json null", raw: ptr("null"), want: cart.Cart{}},
		{name: "malformed", raw: ptr("[{id:"), want: cart.Cart{}},
		{name: "wrong shape", raw: ptr(`{"id":1}`), want: cart.Cart{}},
		{name: "duplicate ids", raw: ptr(`[{"id":1,"amount":1},{"id":1,"amount":2}]`), want: cart.Cart{}},
		{name: "zero amount", raw: ptr(`[{"id":1,"amount":0}]`), want: cart.Cart{}},
		{name: "valid", raw: ptr(`[{"id":3,"title":"x","price":1.5,"image":"i","amount":2}]`),
			want: cart.Cart{{ID: 3, Title: "x", Price: 1.5, Image: "i", Amount: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemStore()
			if tt.raw != nil {
				if err := kv.Set(ctx, cart.DefaultKey, *tt.raw); err != nil {
					t.Fatalf("seed: %v", err)
				}
			}

			got, err := cart.Load(ctx, kv, cart.DefaultKey, nil)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("load mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_ReadErrorIsNotEmpty(t *testing.T) {
	ctx := context.Background()
	kv := &flakyStorage{MemStore: storage.NewMemStore(), failGets: 1}
	if err := kv.Set(ctx, cart.DefaultKey, `[{"id":5,"amount":2}]`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := cart.Load(ctx, kv, cart.DefaultKey, nil)
	if !errors.Is(err, cart.ErrTransient) {
		t.Fatalf("expected transient error, got cart=%v err=%v", got, err)
	}
	if got != nil {
		t.Fatalf("expected no cart on read error, got %v", got)
	}

	got, err = cart.Load(ctx, kv, cart.DefaultKey, nil)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if diff := cmp.Diff(cart.Cart{{ID: 5, Amount: 2}}, got); diff != "" {
		t.Fatalf("load mismatch (-want +got):\n%s", diff)
	}
}

func TestKey(t *testing.T) {
	if got := cart.Key(cart.DefaultKey, ""); got != "@RocketShoes:cart" {
		t.Fatalf("got=%q", got)
	}
	if got := cart.Key(cart.DefaultKey, "abc"); got != "@RocketShoes:cart:abc" {
		t.Fatalf("got=%q", got)
	}
}

func ptr(s string) *string { return &s }
