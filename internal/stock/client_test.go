package stock_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"MiniCart/internal/catalog"
	"MiniCart/internal/stock"
)

func newCatalogTS(t *testing.T) *httptest.Server {
	t.Helper()

	s := &catalog.Server{Store: catalog.NewMemStore(catalog.DefaultSeed)}
	ts := httptest.NewServer(catalog.NewHandler(s, catalog.HTTPDeps{Log: zap.NewNop(), Service: "catalog"}))
	t.Cleanup(ts.Close)
	return ts
}

func TestClient_GetStockAndProduct(t *testing.T) {
	ts := newCatalogTS(t)
	c := stock.NewClient(ts.URL+"/", time.Second)
	ctx := context.Background()

	st, err := c.GetStock(ctx, 2)
	if err != nil {
		t.Fatalf("get stock: %v", err)
	}
	if st.ID != 2 || st.Amount != 5 {
		t.Fatalf("stock=%+v", st)
	}

	p, err := c.GetProduct(ctx, 1)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if p.ID != 1 || p.Title == "" || p.Price != 179.9 || p.Amount != 0 {
		t.Fatalf("product=%+v", p)
	}
}

func TestClient_NotFound(t *testing.T) {
	ts := newCatalogTS(t)
	c := stock.NewClient(ts.URL, time.Second)

	if _, err := c.GetStock(context.Background(), 999); !errors.Is(err, stock.ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestClient_BadStatusAndBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/stock/1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("{not json"))
	}))
	t.Cleanup(ts.Close)

	c := stock.NewClient(ts.URL, time.Second)

	if _, err := c.GetStock(context.Background(), 1); !errors.Is(err, stock.ErrBadStatus) {
		t.Fatalf("err=%v want ErrBadStatus", err)
	}
	if _, err := c.GetProduct(context.Background(), 1); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestClient_Unavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := stock.NewClient(url, 200*time.Millisecond)
	if _, err := c.GetStock(context.Background(), 1); !errors.Is(err, stock.ErrUnavailable) {
		t.Fatalf("err=%v want ErrUnavailable", err)
	}
}
