// Package metrics records scoreboard operations in a private Prometheus
// registry and dumps it in the text exposition format.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/redis/go-redis/extra/redisprometheus/v9"

	"github.com/redis/go-redis/example/scoreboard"
)

const namespace = "scoreboard"

var _ scoreboard.Observer = (*Registry)(nil)

// Registry holds the scoreboard metrics.
type Registry struct {
	reg       *prometheus.Registry
	ops       *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// New returns a Registry with the operation metrics registered.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ops_total",
			Help:      "Number of scoreboard operations by result.",
		}, []string{"op", "result"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "op_duration_seconds",
			Help:      "Duration of scoreboard operations.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"op"}),
	}
	r.reg.MustRegister(r.ops, r.durations)
	return r
}

// ObserveOp implements scoreboard.Observer.
func (r *Registry) ObserveOp(op string, took time.Duration, err error) {
	r.ops.WithLabelValues(op, scoreboard.Result(err)).Inc()
	r.durations.WithLabelValues(op).Observe(took.Seconds())
}

// RegisterPool exports the connection pool statistics of getter as
// scoreboard_pool_* metrics.
func (r *Registry) RegisterPool(getter redisprometheus.StatGetter) error {
	return r.reg.Register(redisprometheus.NewCollector(namespace, "", getter))
}

// Gatherer returns the underlying gatherer.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Dump writes every metric family to w in the text format.
func (r *Registry) Dump(w io.Writer) error {
	families, err := r.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
