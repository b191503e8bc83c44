package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersSubmitted prometheus.Counter
	TransfersExecuted  prometheus.Counter
	TransfersReviewed  prometheus.Counter
	TransferErrors     *prometheus.CounterVec
	TransferAmount     prometheus.Histogram

	// Pending-proposal metrics
	PendingStored    prometheus.Counter
	PendingConsumed  prometheus.Counter
	StaleConfirms    prometheus.Counter
	ZeroAmountErrors prometheus.Counter

	// Session metrics
	SessionsStarted prometheus.Counter
	LoginFailures   prometheus.Counter
}

// New creates all metrics and registers them on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics on the given registerer. Tests use this with a
// throwaway registry so repeated construction does not collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransfersSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "vulnbank_transfers_submitted_total",
			Help: "Total number of transfer submissions",
		}),
		TransfersExecuted: factory.NewCounter(prometheus.CounterOpts{
			Name: "vulnbank_transfers_executed_total",
			Help: "Total number of executed transfers",
		}),
		TransfersReviewed: factory.NewCounter(prometheus.CounterOpts{
			Name: "vulnbank_transfers_reviewed_total",
			Help: "Total number of transfers parked for review",
		}),
		TransferErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vulnbank_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "vulnbank_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		PendingStored: factory.NewCounter(prometheus.CounterOpts{
			Name: "vulnbank_pending_transfers_stored_total",
			Help: "Total number of proposals parked in the pending store",
		}),
		PendingConsumed: factory.NewCounter(prometheus.CounterOpts{
			Name: "vulnbank_pending_transfers_consumed_total",
			Help: "Total number of proposals consumed by confirmation",
		}),
		StaleConfirms: factory.NewCounter(prometheus.CounterOpts{
			Name: "vulnbank_stale_confirmations_total",
			Help: "Total number of confirmations without a pending proposal",
		}),
		ZeroAmountErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "vulnbank_zero_amount_rejections_total",
			Help: "Total number of zero-amount submissions rejected",
		}),
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "vulnbank_sessions_started_total",
			Help: "Total number of sessions started",
		}),
		LoginFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "vulnbank_login_failures_total",
			Help: "Total number of failed logins",
		}),
	}
}
