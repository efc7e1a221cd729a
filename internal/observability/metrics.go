package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// NewsletterDeliveries counts newsletter delivery attempts by outcome.
	NewsletterDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_newsletter_deliveries_total",
		Help: "Total number of newsletter delivery attempts by outcome",
	}, []string{"outcome"})

	// UploadsTotal counts image uploads by outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_uploads_total",
		Help: "Total number of image upload attempts by outcome",
	}, []string{"outcome"})

	// UploadBytes counts bytes transferred to object storage.
	UploadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_upload_bytes_total",
		Help: "Total bytes transferred to object storage",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
