package sink

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BatchesWritten tracks successfully written batches by backend.
	BatchesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sink_batches_written_total",
			Help: "Total number of batches written to storage",
		},
		[]string{"backend"}, // "file", "redis"
	)

	// RecordsWritten tracks records persisted by backend.
	RecordsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sink_records_written_total",
			Help: "Total number of records written to storage",
		},
		[]string{"backend"},
	)

	// WriteErrors tracks failed batch writes by backend.
	WriteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sink_write_errors_total",
			Help: "Total number of failed batch writes",
		},
		[]string{"backend"},
	)
)
