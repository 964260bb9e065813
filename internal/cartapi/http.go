package cartapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniCart/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// StockURL, when set, is reverse-proxied under /products and /stock.
	StockURL string

	RateLimit       int
	RateLimitWindow time.Duration
}

const (
	defaultRateLimit  = 60
	defaultRateWindow = time.Minute
)

func NewHandler(s *Server, deps HTTPDeps) (http.Handler, error) {
	r := chi.NewRouter()

	kit.UseCommon(r, deps.Log)
	kit.UseMetrics(r, deps.Service, deps.Registry, deps.MetricsEnabled, deps.MetricsToken)

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", s.readyz)

	if err := setupProxy(r, deps); err != nil {
		return nil, err
	}

	limit, window := deps.RateLimit, deps.RateLimitWindow
	if limit <= 0 {
		limit = defaultRateLimit
	}
	if window <= 0 {
		window = defaultRateWindow
	}
	limiter := kit.NewRateLimiter(limit, window, rateKey)

	if s.sessionsEnabled() {
		r.With(limiter.Middleware).Post("/session", s.newSession)
	}

	r.Group(func(cr chi.Router) {
		if s.sessionsEnabled() {
			cr.Use(RequireSession(s.Tokens))
		}

		cr.Get("/cart", s.getCart)

		lr := cr.With(limiter.Middleware)
		lr.Post("/cart/items/{id}", s.add)
		lr.Put("/cart/items/{id}", s.update)
		lr.Delete("/cart/items/{id}", s.remove)
	})

	return r, nil
}

func setupProxy(r chi.Router, deps HTTPDeps) error {
	if deps.StockURL == "" {
		return nil
	}

	p, err := kit.NewReverseProxy(deps.StockURL, deps.Log)
	if err != nil {
		return err
	}

	r.Handle("/products", p)
	r.Handle("/products/*", p)
	r.Handle("/stock", p)
	r.Handle("/stock/*", p)
	return nil
}
