package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// UseCommon installs request ids, panic recovery and request logging.
func UseCommon(r chi.Router, log *zap.Logger) {
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(Logging(log))
}

// UseMetrics records HTTP metrics into reg and, when exposed, serves them on a
// bearer-guarded /metrics. A nil registry disables both.
func UseMetrics(r chi.Router, service string, reg *prometheus.Registry, exposed bool, token string) {
	if reg == nil {
		return
	}

	m := NewMetrics(reg)
	r.Use(m.Middleware(service, ChiRoutePatternOrPath))

	if !exposed {
		return
	}
	r.With(MetricsAuth(token)).
		Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}

// ChiRoutePatternOrPath labels requests by route pattern so ids do not explode cardinality.
func ChiRoutePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if rp := rc.RoutePattern(); rp != "" {
			return rp
		}
	}
	return r.URL.Path
}

func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
