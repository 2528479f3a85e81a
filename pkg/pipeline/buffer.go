package pipeline

import (
	"fmt"
	"sort"

	"github.com/el-remph/hertzian-steam-tech-test/pkg/review"
)

// Buffer holds canonical records that have arrived but are not yet written,
// in arrival order. The API delivers pages non-increasing by date, so the
// buffer is globally date-descending without ever being sorted as a whole.
// It is owned by the orchestrator's single fetch/accumulate flow and is not
// safe for concurrent use.
type Buffer struct {
	records []review.Record
}

// Append adds records to the back of the buffer, preserving their order.
func (b *Buffer) Append(records ...review.Record) {
	b.records = append(b.records, records...)
}

// Len returns the number of buffered records.
func (b *Buffer) Len() int {
	return len(b.records)
}

// Extract removes and returns exactly n records from the front, ordered
// date-descending with ids ascending within each contiguous run of equal
// dates. Arrival order already provides the date ordering, so only the
// same-date runs are comparison-sorted; cost is bounded by the size of
// those runs, not the buffer. A run is cut short when the result reaches n,
// even if more records of the same date remain buffered.
//
// The returned slice is freshly allocated: ownership transfers to the
// caller and later buffer mutations cannot touch it.
func (b *Buffer) Extract(n int) ([]review.Record, error) {
	if n > len(b.records) {
		return nil, fmt.Errorf("extract %d records from buffer of %d", n, len(b.records))
	}

	out := make([]review.Record, 0, n)
	rest := b.records
	for len(out) < n {
		run := 1
		for len(out)+run < n && rest[run].Date == rest[0].Date {
			run++
		}
		chunk := rest[:run]
		sort.Slice(chunk, func(i, j int) bool {
			return chunk[i].ID < chunk[j].ID
		})
		out = append(out, chunk...)
		rest = rest[run:]
	}
	b.records = rest

	return out, nil
}
