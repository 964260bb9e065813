package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniCart/internal/catalog"
	"MiniCart/internal/config"
	"MiniCart/internal/storage"
	"MiniCart/pkg/kit"
)

func main() {
	service := "catalog"

	if err := config.LoadDotenv(); err != nil {
		kit.NewLogger(service, "info").Fatal("load .env failed", zap.Error(err))
	}
	cfg, _ := config.LoadCatalog()

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal("open catalog store failed", zap.Error(err))
	}
	defer func() { _ = closeStore() }()

	reg := prometheus.NewRegistry()
	h := catalog.NewHandler(&catalog.Server{Store: store, Log: log}, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   cfg.MetricsToken,
	})

	if err := kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStore(cfg config.Catalog) (catalog.Store, func() error, error) {
	noop := func() error { return nil }

	if cfg.DatabaseURL != "" {
		db, err := storage.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return catalog.NewPostgresStore(db), db.Close, nil
	}

	if cfg.SeedPath == "" {
		return catalog.NewMemStore(catalog.DefaultSeed), noop, nil
	}

	f, err := os.Open(cfg.SeedPath)
	if err != nil {
		return nil, noop, err
	}
	defer f.Close()

	seed, err := catalog.ReadSeed(f)
	if err != nil {
		return nil, noop, err
	}
	return catalog.NewMemStore(seed), noop, nil
}
