// Package config reads service settings from the environment, after loading an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Cart struct {
	Port     string
	LogLevel string

	StockURL     string
	StockTimeout time.Duration

	Storage     string // memory | file | redis | postgres
	StoragePath string
	StorageKey  string
	RedisAddr   string
	DatabaseURL string

	Locale string

	SessionSecret string
	SessionTTL    time.Duration

	RateLimit       int
	RateLimitWindow time.Duration

	MetricsToken string
}

type Catalog struct {
	Port         string
	LogLevel     string
	SeedPath     string
	DatabaseURL  string
	MetricsToken string
}

// LoadDotenv loads the given files, or .env when none are given. Missing files are
// ignored; variables already set in the environment win.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func LoadCart() (Cart, error) {
	stockTimeout, err := durationEnv("STOCK_TIMEOUT", 3*time.Second)
	if err != nil {
		return Cart{}, err
	}
	sessionTTL, err := durationEnv("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return Cart{}, err
	}
	rateLimit, err := intEnv("RATE_LIMIT", 60)
	if err != nil {
		return Cart{}, err
	}
	rateWindow, err := durationEnv("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return Cart{}, err
	}

	cfg := Cart{
		Port:     getenv("PORT", "8084"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		StockURL:     getenv("STOCK_URL", "http://localhost:3333"),
		StockTimeout: stockTimeout,

		Storage:     getenv("CART_STORAGE", "file"),
		StoragePath: getenv("CART_STORAGE_PATH", "minicart-storage.json"),
		StorageKey:  getenv("CART_STORAGE_KEY", "@RocketShoes:cart"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		Locale: getenv("CART_LOCALE", "en"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    sessionTTL,

		RateLimit:       rateLimit,
		RateLimitWindow: rateWindow,

		MetricsToken: os.Getenv("METRICS_TOKEN"),
	}

	if cfg.Storage == "postgres" && cfg.DatabaseURL == "" {
		return Cart{}, fmt.Errorf("DATABASE_URL is required when CART_STORAGE=postgres")
	}
	if cfg.SessionSecret != "" && len(cfg.SessionSecret) < 32 {
		return Cart{}, fmt.Errorf("SESSION_SECRET must be at least 32 chars")
	}
	if cfg.RateLimit <= 0 {
		return Cart{}, fmt.Errorf("RATE_LIMIT must be positive")
	}
	return cfg, nil
}

func LoadCatalog() (Catalog, error) {
	return Catalog{
		Port:         getenv("PORT", "3333"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		SeedPath:     os.Getenv("CATALOG_SEED"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		MetricsToken: os.Getenv("METRICS_TOKEN"),
	}, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func intEnv(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", k, err)
	}
	return i, nil
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", k, err)
	}
	return d, nil
}
