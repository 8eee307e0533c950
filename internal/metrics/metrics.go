// Package metrics records batch run counters with Prometheus.
//
// A run is a short-lived batch job, so nothing is served over HTTP: the
// collected values are written once in the node_exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/predictionsbetting/internal/models"
)

// Recorder receives scoring events from the batch runner.
type Recorder interface {
	PropositionScored()
	PropositionSkipped(reason string)
	TransfersRecorded(m models.Method, transfers []models.Transfer)
}

// Nop is a Recorder that discards everything.
type Nop struct{}

func (Nop) PropositionScored() {}

func (Nop) PropositionSkipped(string) {}

func (Nop) TransfersRecorded(models.Method, []models.Transfer) {}

// PrometheusMetrics implements Recorder on its own registry, so several
// instances can coexist in one process (and in tests).
type PrometheusMetrics struct {
	registry       *prometheus.Registry
	scored         prometheus.Counter
	skipped        *prometheus.CounterVec
	transfers      *prometheus.CounterVec
	transferAmount *prometheus.HistogramVec
}

var _ Recorder = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics creates and registers the run metrics.
func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		registry: reg,
		scored: factory.NewCounter(prometheus.CounterOpts{
			Name: "predictbet_propositions_scored_total",
			Help: "Valid propositions evaluated by the batch runner.",
		}),
		skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "predictbet_propositions_skipped_total",
			Help: "Invalid propositions excluded from scoring, by reason.",
		}, []string{"reason"}),
		transfers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "predictbet_transfers_total",
			Help: "Pairwise transfers produced, by payout method.",
		}, []string{"method"}),
		transferAmount: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "predictbet_transfer_amount",
			Help:    "Distribution of transfer amounts, by payout method.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 0.75, 0.9, 1},
		}, []string{"method"}),
	}
}

// PropositionScored counts one scored proposition.
func (pm *PrometheusMetrics) PropositionScored() {
	pm.scored.Inc()
}

// PropositionSkipped counts one skipped proposition.
func (pm *PrometheusMetrics) PropositionSkipped(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	pm.skipped.WithLabelValues(reason).Inc()
}

// TransfersRecorded counts transfers and observes their amounts.
func (pm *PrometheusMetrics) TransfersRecorded(m models.Method, transfers []models.Transfer) {
	method := m.String()
	pm.transfers.WithLabelValues(method).Add(float64(len(transfers)))
	for _, t := range transfers {
		pm.transferAmount.WithLabelValues(method).Observe(t.Amount)
	}
}

// Gatherer exposes the underlying registry.
func (pm *PrometheusMetrics) Gatherer() prometheus.Gatherer {
	return pm.registry
}

// WriteTextfile writes all metrics to path atomically.
func (pm *PrometheusMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, pm.registry)
}
