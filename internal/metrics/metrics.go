package metrics

import (
	"database/sql"

	"github.com/dlmiddlecote/sqlstats"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline stage counters and histograms, partitioned by stage.

var (
	PipelineStageLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "paypost",
		Subsystem: "pipeline",
		Name:      "stage_duration_seconds",
		Help:      "Duration of each transaction pipeline stage",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"stage"})

	PipelineStageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paypost",
		Subsystem: "pipeline",
		Name:      "stage_errors_total",
		Help:      "Total failures per transaction pipeline stage",
	}, []string{"stage"})

	TransactionsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paypost",
		Subsystem: "pipeline",
		Name:      "transactions_submitted_total",
		Help:      "Total transactions accepted by the node",
	}, []string{"function"})

	TransactionsFinalized = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paypost",
		Subsystem: "pipeline",
		Name:      "transactions_finalized_total",
		Help:      "Total transactions by final status",
	}, []string{"status"})

	TransactionsReconciled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paypost",
		Subsystem: "scan",
		Name:      "transactions_reconciled_total",
		Help:      "Total unresolved transactions settled by the background scan, by status",
	}, []string{"status"})

	SenderLockWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "paypost",
		Subsystem: "pipeline",
		Name:      "sender_lock_wait_seconds",
		Help:      "Time spent waiting for the per-sender lock",
		Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 30},
	})

	SignerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paypost",
		Subsystem: "signer",
		Name:      "requests_total",
		Help:      "Total custodial signer requests by outcome",
	}, []string{"outcome"})
)

// RegisterDBStats exposes database/sql pool statistics of db under name.
func RegisterDBStats(registerer prometheus.Registerer, name string, db *sql.DB) error {
	if err := registerer.Register(sqlstats.NewStatsCollector(name, db)); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return nil
		}
		return errors.Wrap(err, "failed to register db stats collector")
	}
	return nil
}

// Service owns the collectors that depend on runtime components.
type Service struct {
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// New registers database pool statistics on the default registerer.
func New(db *sql.DB) (*Service, error) {
	s := &Service{
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	}

	if err := RegisterDBStats(s.Registerer, "paypost", db); err != nil {
		return nil, err
	}

	return s, nil
}
