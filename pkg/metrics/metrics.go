// Package metrics provides the centralized Prometheus registry reference
// for the scraper. All metrics are defined in their respective packages
// (steam, pipeline, sink) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the scraper.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/steam):
//   - steam_requests_total{status} (Counter): Page requests by HTTP status
//   - steam_request_duration_seconds (Histogram): Page request duration
//   - steam_reviews_fetched_total (Counter): Raw reviews received
//
// Pipeline Metrics (pkg/pipeline):
//   - pipeline_pages_consumed_total (Counter): Pages consumed by the orchestrator
//   - pipeline_buffered_records (Gauge): Records awaiting a batch write
//   - pipeline_batches_dispatched_total (Counter): Batches handed to writers
//   - pipeline_duplicate_ids_total (Counter): Duplicate identifiers observed
//
// Sink Metrics (pkg/sink):
//   - sink_batches_written_total{backend} (Counter): Batches written by backend
//   - sink_records_written_total{backend} (Counter): Records written by backend
//   - sink_write_errors_total{backend} (Counter): Failed batch writes
//
// Example Prometheus Queries:
//
//   # Review throughput
//   rate(steam_reviews_fetched_total[5m])
//
//   # Write error rate
//   rate(sink_write_errors_total[5m])
//
//   # Buffer depth (should stay below one batch at steady state)
//   pipeline_buffered_records
//
//   # P95 page fetch latency
//   histogram_quantile(0.95, rate(steam_request_duration_seconds_bucket[5m]))
