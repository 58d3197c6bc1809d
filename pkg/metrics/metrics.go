// Package metrics exposes Prometheus collectors for recommendation runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sentiment_trading"

type Metrics struct {
	registry *prometheus.Registry

	runsTotal            *prometheus.CounterVec
	collaboratorFailures *prometheus.CounterVec
	observations         *prometheus.CounterVec
	trimSteps            prometheus.Counter
	lastTotalCost        prometheus.Gauge
	lastBudget           prometheus.Gauge
	listSize             *prometheus.GaugeVec
	runDuration          prometheus.Histogram
}

// New builds a Metrics instance on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Recommendation runs by trigger and outcome",
		}, []string{"trigger", "outcome"}),
		collaboratorFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collaborator_failures_total",
			Help:      "Failed calls to external data sources",
		}, []string{"source"}),
		observations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentiment_observations_total",
			Help:      "Sentiment observations received by direction",
		}, []string{"direction"}),
		trimSteps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "budget_trim_steps_total",
			Help:      "Share reductions and removals performed to fit the budget",
		}),
		lastTotalCost: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_total_cost",
			Help:      "Total cost of the most recent buy list",
		}),
		lastBudget: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_budget",
			Help:      "Budget of the most recent run",
		}),
		listSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_list_size",
			Help:      "Entries in the most recent sell and buy lists",
		}, []string{"list"}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a recommendation run",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300},
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordRun(trigger, outcome string, seconds float64) {
	m.runsTotal.WithLabelValues(trigger, outcome).Inc()
	m.runDuration.Observe(seconds)
}

func (m *Metrics) RecordCollaboratorFailure(source string) {
	m.collaboratorFailures.WithLabelValues(source).Inc()
}

func (m *Metrics) RecordObservations(direction string, n int) {
	m.observations.WithLabelValues(direction).Add(float64(n))
}

func (m *Metrics) RecordAllocation(budget, totalCost float64, steps, sells, buys int) {
	m.trimSteps.Add(float64(steps))
	m.lastBudget.Set(budget)
	m.lastTotalCost.Set(totalCost)
	m.listSize.WithLabelValues("sell").Set(float64(sells))
	m.listSize.WithLabelValues("buy").Set(float64(buys))
}
