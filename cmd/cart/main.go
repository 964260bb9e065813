package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniCart/internal/cart"
	"MiniCart/internal/cartapi"
	"MiniCart/internal/config"
	"MiniCart/internal/session"
	"MiniCart/internal/stock"
	"MiniCart/internal/storage"
	"MiniCart/pkg/kit"
)

func main() {
	service := "cart"

	if err := config.LoadDotenv(); err != nil {
		kit.NewLogger(service, "info").Fatal("load .env failed", zap.Error(err))
	}
	cfg, err := config.LoadCart()
	if err != nil {
		kit.NewLogger(service, "info").Fatal("config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := storage.Open(ctx, storage.Options{
		Driver:    cfg.Storage,
		FilePath:  cfg.StoragePath,
		RedisAddr: cfg.RedisAddr,
		DSN:       cfg.DatabaseURL,
	}, log)
	if err != nil {
		log.Fatal("open storage failed", zap.String("driver", cfg.Storage), zap.Error(err))
	}
	defer func() { _ = closeKV() }()

	reg := prometheus.NewRegistry()
	msgs := cart.MessagesFor(cfg.Locale)

	carts := cartapi.NewRegistry(kv, cart.Deps{
		Stock:    stock.NewClient(cfg.StockURL, cfg.StockTimeout),
		Key:      cfg.StorageKey,
		Notifier: cart.LogNotifier{Log: log},
		Messages: &msgs,
		Metrics:  cart.NewMetrics(reg),
		Log:      log,
	})

	s := &cartapi.Server{
		Carts:  carts,
		Tokens: session.NewTokenMaker(cfg.SessionSecret, cfg.SessionTTL),
		Log:    log,
	}
	if !s.Tokens.Enabled() {
		log.Info("sessions disabled, serving a single shared cart")
	}

	h, err := cartapi.NewHandler(s, cartapi.HTTPDeps{
		Log:             log,
		Service:         service,
		Registry:        reg,
		MetricsEnabled:  true,
		MetricsToken:    cfg.MetricsToken,
		StockURL:        cfg.StockURL,
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
	})
	if err != nil {
		log.Fatal("init cart handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
