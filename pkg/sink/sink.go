// Package sink persists completed review batches to durable storage.
package sink

import (
	"context"
	"fmt"

	"github.com/el-remph/hertzian-steam-tech-test/pkg/review"
)

// Batch is one completed, ordered group of canonical records together with
// the identity of its destination. Index is assigned by the orchestrator in
// strictly increasing order before the write is dispatched, so concurrent
// writes can never target overlapping destinations.
type Batch struct {
	Collection string
	Index      int
	Records    []review.Record
}

// Name returns the canonical destination name for this batch.
func (b Batch) Name() string {
	return fmt.Sprintf("%s.%d.json", b.Collection, b.Index)
}

// Sink serializes a batch to a storage backend. Implementations must not
// mutate or retain b.Records beyond the call.
type Sink interface {
	Write(ctx context.Context, b Batch) error
}

// StorageError represents a failed batch write. It is fatal to the run, but
// batches already written stay written.
type StorageError struct {
	Dest string
	Err  error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("write batch %s: %v", e.Dest, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// MultiSink fans a batch out to several sinks in order, stopping at the
// first failure.
type MultiSink []Sink

// Write implements Sink.
func (m MultiSink) Write(ctx context.Context, b Batch) error {
	for _, s := range m {
		if err := s.Write(ctx, b); err != nil {
			return err
		}
	}
	return nil
}
