package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesConsumed tracks pages consumed from the review stream.
	PagesConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_pages_consumed_total",
			Help: "Total review pages consumed by the orchestrator",
		},
	)

	// BufferedRecords tracks the current buffer depth.
	BufferedRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pipeline_buffered_records",
			Help: "Records currently buffered awaiting a batch write",
		},
	)

	// BatchesDispatched tracks batches handed to writers.
	BatchesDispatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_batches_dispatched_total",
			Help: "Total batches dispatched to storage writers",
		},
	)

	// DuplicateIDs tracks duplicate identifiers reported by the source.
	DuplicateIDs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_duplicate_ids_total",
			Help: "Duplicate review identifiers observed across a run",
		},
	)
)
