// Package pipeline drives the fetch, accumulate, split and write loop of a
// scraping run.
//
// One run is one Orchestrator. A single flow of control fetches pages
// through a steam.Stream (whose next request is always already in flight),
// transforms each page into canonical records, feeds identifiers to the
// duplicate tracker, and appends to the buffer. Whenever the buffer holds a
// full batch, a prefix is extracted in the required order and handed to a
// writer goroutine, so storage I/O overlaps with the next fetch.
//
// Ordering rules:
//   - records enter the buffer in exactly the order their pages arrived,
//     which the API guarantees is non-increasing by date
//   - an extracted batch is ordered date-descending (inherited from arrival
//     order, never recomputed) with ids ascending inside each contiguous
//     run of equal dates
//
// Example usage:
//
//	orch, err := pipeline.New(client, fileSink, pipeline.Config{
//		AppID:     1382330,
//		BatchSize: 5000,
//	})
//	if err != nil {
//		return err
//	}
//	return orch.Run(ctx)
//
// A run always drains: on any fetch, transform or write failure the
// already-buffered records are flushed best-effort before the error is
// surfaced, and final diagnostics (count mismatch, duplicate identifiers)
// are emitted exactly once.
package pipeline
