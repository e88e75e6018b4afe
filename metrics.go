package authcore

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts operation outcomes. It is optional: a nil *Metrics is a
// no-op, so deployments without a registry pay nothing.
type Metrics struct {
	operations *prometheus.CounterVec
}

// NewMetrics builds and registers the engine collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "authcore",
			Name:      "operations_total",
			Help:      "Auth operations by name and outcome.",
		}, []string{"operation", "outcome"}),
	}
	if err := reg.Register(m.operations); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(operation string, kind ErrorKind) {
	if m == nil {
		return
	}
	outcome := "ok"
	if kind != KindNone {
		outcome = kind.String()
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}
