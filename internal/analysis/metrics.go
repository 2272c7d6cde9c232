package analysis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opAnalyze   = "analyze"
	opTranslate = "translate"
	opDetect    = "detect_context"
	opExtract   = "extract_brand_settings"
)

var (
	operations = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "governance_operations_total",
		Help: "Number of governance operations, by operation and outcome.",
	}, []string{"operation", "outcome"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name:    "governance_operation_duration_seconds",
		Help:    "Duration of governance operations including response decoding.",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"operation"})
)

func observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	operations.WithLabelValues(op, outcome).Inc()
	operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
