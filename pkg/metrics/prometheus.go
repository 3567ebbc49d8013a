package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	PassesCompleted   prometheus.Counter
	PassesFailed      prometheus.Counter
	OffersNormalized  prometheus.Counter
	RecordsKept       prometheus.Counter
	AlertsTriggered   prometheus.Counter
	NotificationsSent prometheus.Counter
	PassDuration      prometheus.Histogram
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		PassesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_completed_total",
			Help:      "The total number of completed monitoring passes",
		}),
		PassesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_failed_total",
			Help:      "The total number of aborted monitoring passes",
		}),
		OffersNormalized: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_normalized_total",
			Help:      "The total number of raw offers normalized into records",
		}),
		RecordsKept: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_kept_total",
			Help:      "The total number of records surviving dedup and filters",
		}),
		AlertsTriggered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_triggered_total",
			Help:      "The total number of records with a price or seat alert",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of alert notifications sent",
		}),
		PassDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Time taken to run one monitoring pass",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
