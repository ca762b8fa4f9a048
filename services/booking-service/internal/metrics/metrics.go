package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "slothold"

var (
	once sync.Once

	holdOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hold_operations_total",
			Help:      "Hold operations by operation and outcome code.",
		},
		[]string{"op", "outcome"},
	)

	holdsExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "holds_expired_total",
		Help:      "Active holds rewritten to expired by the sweeper.",
	})

	slotsComputed = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "slots_returned",
		Help:      "Number of slots returned per availability query.",
		Buckets:   []float64{0, 1, 5, 10, 20, 40, 80, 160},
	})

	txDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tx_duration_seconds",
			Help:      "Duration of hold and booking transactions.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	outboxPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_published_total",
			Help:      "Outbox events published to Kafka by result.",
		},
		[]string{"result"},
	)

	cacheInvalidations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_invalidations_total",
		Help:      "Catalog cache entries purged after a change event.",
	})
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(holdOps, holdsExpired, slotsComputed, txDuration, outboxPublished, cacheInvalidations)
	})
}

// ObserveHoldOp counts a create/release/finalize/cancel call. outcome is "ok"
// or an error code.
func ObserveHoldOp(op, outcome string) {
	if outcome == "" {
		outcome = "error"
	}
	holdOps.WithLabelValues(op, outcome).Inc()
}

func AddHoldsExpired(n int) {
	holdsExpired.Add(float64(n))
}

func ObserveSlots(n int) {
	slotsComputed.Observe(float64(n))
}

func ObserveTx(op string, start time.Time) {
	txDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func AddOutbox(result string, n int) {
	outboxPublished.WithLabelValues(result).Add(float64(n))
}

func IncCacheInvalidation() {
	cacheInvalidations.Inc()
}
