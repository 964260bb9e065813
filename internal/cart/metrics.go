package cart

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	Operations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minicart_cart_operations_total",
				Help: "Cart operations by outcome",
			},
			[]string{"op", "outcome"},
		),
	}

	reg.MustRegister(m.Operations)
	return m
}

func (m *Metrics) observe(o op, out Outcome) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(string(o), out.String()).Inc()
}
