package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCart_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "CART_STORAGE", "CART_STORAGE_KEY", "STOCK_TIMEOUT", "SESSION_SECRET", "RATE_LIMIT"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadCart()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8084" || cfg.Storage != "file" || cfg.StorageKey != "@RocketShoes:cart" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.StockTimeout != 3*time.Second {
		t.Fatalf("stock timeout=%s", cfg.StockTimeout)
	}
}

func TestLoadCart_Validation(t *testing.T) {
	t.Setenv("CART_STORAGE", "postgres")
	t.Setenv("DATABASE_URL", "")
	if _, err := LoadCart(); err == nil {
		t.Fatalf("postgres without DATABASE_URL must fail")
	}

	t.Setenv("CART_STORAGE", "memory")
	t.Setenv("SESSION_SECRET", "short")
	if _, err := LoadCart(); err == nil {
		t.Fatalf("short secret must fail")
	}

	t.Setenv("SESSION_SECRET", "")
	t.Setenv("STOCK_TIMEOUT", "soon")
	if _, err := LoadCart(); err == nil {
		t.Fatalf("bad duration must fail")
	}
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("MINICART_TEST_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("MINICART_TEST_VALUE", "")
	os.Unsetenv("MINICART_TEST_VALUE")

	if err := LoadDotenv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("MINICART_TEST_VALUE"); got != "from-file" {
		t.Fatalf("got=%q", got)
	}
}
