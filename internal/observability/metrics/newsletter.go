package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NewsletterDispatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_dispatches_total",
			Help: "Total number of newsletter dispatch runs by result",
		},
		[]string{"result"},
	)

	NewsletterDispatchDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsletter_dispatch_duration_seconds",
			Help:    "Duration of a full newsletter dispatch run in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	NewsletterEmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_emails_total",
			Help: "Total number of newsletter emails by send outcome",
		},
		[]string{"outcome"},
	)
)
