package stats

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultPartial = "partial"
	ResultFailed  = "failed"
	ResultEmpty   = "empty"
)

var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "footyfeed_fetch_total",
		Help: "The total number of source fetches by grammar and result",
	}, []string{"grammar", "result"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "footyfeed_fetch_duration_seconds",
		Help:    "Duration of a single source fetch including parsing",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms up to ~25s
	}, []string{"grammar"})

	batchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "footyfeed_batch_total",
		Help: "The total number of fetch batches by outcome",
	}, []string{"result"})

	refreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "footyfeed_refresh_total",
		Help: "The total number of finished refresh sessions by final state",
	}, []string{"state"})

	itemsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "footyfeed_items",
		Help: "The number of items currently displayed",
	})
)

func ObserveFetch(grammar string, err error, duration time.Duration) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}

	fetchTotal.WithLabelValues(grammar, result).Inc()
	fetchDuration.WithLabelValues(grammar).Observe(duration.Seconds())
}

// ObserveBatch records a batch outcome from the number of sources and failures.
func ObserveBatch(sources, failed int) {
	var result string
	switch {
	case sources == 0:
		result = ResultEmpty
	case failed == 0:
		result = ResultOK
	case failed == sources:
		result = ResultFailed
	default:
		result = ResultPartial
	}

	batchTotal.WithLabelValues(result).Inc()
}

func ObserveRefresh(state string, items int) {
	refreshTotal.WithLabelValues(state).Inc()
	itemsGauge.Set(float64(items))
}
