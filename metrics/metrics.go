package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sequencer"

const (
	// ResultSuccess label value
	ResultSuccess = "success"
	// ResultFailure label value
	ResultFailure = "failure"
	// ResultRejected label value, used for fragments that failed verification
	ResultRejected = "rejected"
)

var (
	// L1Head is the latest L1 block number seen by the tracker
	L1Head = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "l1",
		Name:      "head_block",
		Help:      "latest L1 block number observed",
	})
	// L1Finalized is the latest finalized L1 block number seen by the tracker
	L1Finalized = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "l1",
		Name:      "finalized_block",
		Help:      "latest finalized L1 block number observed",
	})
	// L1PollFailures counts failed L1 polls
	L1PollFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "l1",
		Name:      "poll_failures_total",
		Help:      "number of L1 polls that failed",
	})
	// L1StaleResponses counts responses discarded because they went backwards
	L1StaleResponses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "l1",
		Name:      "stale_responses_total",
		Help:      "number of L1 responses older than the cached observation",
	})

	// CatchupAttempts counts catchup requests per source and result
	CatchupAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "catchup",
		Name:      "attempts_total",
		Help:      "number of state catchup attempts",
	}, []string{"source", "result"})

	// AppliedTransfers counts fee transfers applied to the ledger
	AppliedTransfers = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "state",
		Name:      "applied_transfers_total",
		Help:      "number of fee transfers applied",
	})
	// SkippedTransfers counts fee transfers excluded because they would overdraw
	SkippedTransfers = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "state",
		Name:      "skipped_transfers_total",
		Help:      "number of fee transfers skipped",
	})

	// StorageOperations counts storage adapter calls per operation and result
	StorageOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "operations_total",
		Help:      "number of storage operations",
	}, []string{"operation", "result"})
)

// Result maps an error to a result label
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
