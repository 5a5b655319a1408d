package monitor

import "github.com/prometheus/client_golang/prometheus"

var (
	// UploadBatchesTotal counts processed earnings uploads.
	UploadBatchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "earnings_upload_batches_total",
			Help: "Total number of earnings CSV batches ingested.",
		},
	)

	// EarningsRowsIngested counts canonical earnings rows persisted.
	EarningsRowsIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "earnings_rows_ingested_total",
			Help: "Total number of canonical earnings rows stored.",
		},
	)

	// EarningsRowsSkipped counts malformed CSV rows dropped during parsing.
	EarningsRowsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "earnings_rows_skipped_total",
			Help: "Total number of malformed CSV rows skipped.",
		},
	)

	// PaymentTransitionsTotal counts payment request status transitions by result.
	PaymentTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_status_transitions_total",
			Help: "Total number of payment request status transitions.",
		},
		[]string{"status", "result"},
	)

	// EventsConsumedTotal counts broker events seen by the audit tailer.
	EventsConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_consumed_total",
			Help: "Total number of business events consumed, per topic.",
		},
		[]string{"topic"},
	)
)

// InitBusinessMetrics registers domain metrics.
func InitBusinessMetrics() {
	prometheus.MustRegister(UploadBatchesTotal)
	prometheus.MustRegister(EarningsRowsIngested)
	prometheus.MustRegister(EarningsRowsSkipped)
	prometheus.MustRegister(PaymentTransitionsTotal)
	prometheus.MustRegister(EventsConsumedTotal)
}
