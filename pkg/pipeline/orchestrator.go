package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/el-remph/hertzian-steam-tech-test/pkg/logging"
	"github.com/el-remph/hertzian-steam-tech-test/pkg/review"
	"github.com/el-remph/hertzian-steam-tech-test/pkg/sink"
	"github.com/el-remph/hertzian-steam-tech-test/pkg/steam"
	"github.com/rs/zerolog"
)

// Config holds the per-run orchestrator configuration.
type Config struct {
	// AppID is the collection being scraped.
	AppID int64

	// BatchSize is the number of records per output batch (default 5000).
	BatchSize int

	// MaxFiles caps the number of batches written; 0 means unlimited.
	MaxFiles int

	// Basis selects creation vs last-update time for filtering and dates.
	Basis steam.DateBasis

	// Location is the timezone used to derive calendar dates (default
	// time.Local).
	Location *time.Location
}

// Orchestrator owns one scraping run: the buffer, the duplicate table, the
// running total and the outstanding writer goroutines. Construct one per
// run; it must not be reused.
type Orchestrator struct {
	client     *steam.Client
	sink       sink.Sink
	cfg        Config
	xform      review.Transformer
	collection string

	buf   Buffer
	dupes *DupeTracker

	// total is the expected remaining record count, seeded from the first
	// page's declared total. Negative at end of run means the source
	// delivered more than it declared.
	total     int64
	fileIndex int
	flushed   bool

	wg       sync.WaitGroup
	mu       sync.Mutex
	writeErr error

	logger zerolog.Logger
}

// New creates an orchestrator for one run.
func New(client *steam.Client, s sink.Sink, cfg Config) (*Orchestrator, error) {
	if client == nil {
		return nil, fmt.Errorf("steam client is required")
	}
	if s == nil {
		return nil, fmt.Errorf("sink is required")
	}
	if cfg.AppID <= 0 {
		return nil, fmt.Errorf("app id must be positive (got %d)", cfg.AppID)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 5000
	}
	if cfg.MaxFiles < 0 {
		return nil, fmt.Errorf("max files must be >= 0 (got %d)", cfg.MaxFiles)
	}

	return &Orchestrator{
		client:     client,
		sink:       s,
		cfg:        cfg,
		xform:      review.NewTransformer(cfg.Basis, cfg.Location),
		collection: strconv.FormatInt(cfg.AppID, 10),
		dupes:      NewDupeTracker(),
		logger:     logging.NewLogger("orchestrator"),
	}, nil
}

// Run executes the whole pipeline: fetch and accumulate until the stream
// ends or the file limit is reached, drain whatever remains buffered, wait
// for all outstanding writes, and emit final diagnostics. Draining and
// finalization happen on every exit path, including failures.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.logger.Info().
		Str("collection", o.collection).
		Int("batch_size", o.cfg.BatchSize).
		Int("max_files", o.cfg.MaxFiles).
		Str("date_basis", o.cfg.Basis.String()).
		Msg("Starting run")

	stream := steam.NewStream(ctx, o.client, o.cfg.AppID, o.cfg.Basis)

	runErr := o.loop(ctx, stream)
	drainErr := o.drain(ctx)
	o.wg.Wait()
	o.finalize(stream)

	if runErr != nil {
		return runErr
	}
	if err := o.writeError(); err != nil {
		return err
	}
	return drainErr
}

// loop is the RUNNING state: consume pages until end of stream, the file
// limit, or a failure.
func (o *Orchestrator) loop(ctx context.Context, stream *steam.Stream) error {
	first := true
	for {
		if o.maxed() {
			return nil
		}
		if err := o.writeError(); err != nil {
			return err
		}

		env, err := stream.Next(ctx)
		if err != nil {
			return err
		}
		PagesConsumed.Inc()

		records, err := o.xform.TransformAll(env.Reviews)
		if err != nil {
			return err
		}

		if first {
			// Only the first page's declared total is meaningful
			o.total = int64(env.QuerySummary.TotalReviews)
			first = false
		}
		o.total -= int64(len(records))

		for _, rec := range records {
			o.dupes.Observe(rec.ID)
		}
		o.buf.Append(records...)
		BufferedRecords.Set(float64(o.buf.Len()))

		o.logger.Debug().
			Int("page_records", len(records)).
			Int("buffered", o.buf.Len()).
			Msg("Received reviews")

		if len(env.Reviews) == 0 {
			return nil
		}

		for o.buf.Len() >= o.cfg.BatchSize && !o.maxed() {
			batch, err := o.nextBatch(o.cfg.BatchSize)
			if err != nil {
				return err
			}
			o.dispatch(ctx, batch)
		}
	}
}

// nextBatch extracts n records and assigns the batch its file index. Index
// assignment is synchronous with extraction, so batches always carry
// strictly increasing, non-overlapping destinations regardless of writer
// completion order.
func (o *Orchestrator) nextBatch(n int) (sink.Batch, error) {
	records, err := o.buf.Extract(n)
	if err != nil {
		return sink.Batch{}, err
	}
	BufferedRecords.Set(float64(o.buf.Len()))

	batch := sink.Batch{
		Collection: o.collection,
		Index:      o.fileIndex,
		Records:    records,
	}
	o.fileIndex++
	BatchesDispatched.Inc()

	return batch, nil
}

// dispatch hands a batch to its own writer goroutine so storage I/O runs
// off the critical path of the fetch loop.
func (o *Orchestrator) dispatch(ctx context.Context, batch sink.Batch) {
	o.logger.Info().
		Int("file_index", batch.Index).
		Int("records", len(batch.Records)).
		Msg("Dispatching batch write")

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		if err := o.sink.Write(ctx, batch); err != nil {
			o.recordWriteError(err)
			o.logger.Error().
				Err(err).
				Int("file_index", batch.Index).
				Msg("Batch write failed")
		}
	}()
}

// drain is the DRAINING state: flush the remaining buffer regardless of the
// batch-size threshold. Writes here are synchronous; overlap only matters
// while pages are still being fetched. Once the file limit is reached the
// remaining records are discarded rather than written.
func (o *Orchestrator) drain(ctx context.Context) error {
	// Flushing must proceed even when the run is aborting due to a
	// cancelled context.
	ctx = context.WithoutCancel(ctx)

	var err error
	for o.buf.Len() > 0 && !o.maxed() && err == nil {
		var batch sink.Batch
		batch, err = o.nextBatch(min(o.cfg.BatchSize, o.buf.Len()))
		if err != nil {
			break
		}
		o.logger.Info().
			Int("file_index", batch.Index).
			Int("records", len(batch.Records)).
			Msg("Draining batch")
		if werr := o.sink.Write(ctx, batch); werr != nil {
			o.logger.Error().
				Err(werr).
				Int("file_index", batch.Index).
				Msg("Drain write failed")
			err = werr
		}
	}

	if n := o.buf.Len(); n > 0 {
		o.logger.Debug().
			Int("buffered", n).
			Msg("Discarding unwritten buffered records")
		o.buf = Buffer{}
	}
	BufferedRecords.Set(0)

	return err
}

// finalize emits end-of-run diagnostics exactly once, even when draining
// was entered through an error path.
func (o *Orchestrator) finalize(stream *steam.Stream) {
	if o.flushed {
		return
	}
	o.flushed = true

	switch {
	case o.total < 0:
		o.logger.Warn().
			Int64("extra", -o.total).
			Msg("Source delivered more reviews than declared")
	case o.total > 0:
		o.logger.Warn().
			Int64("missing", o.total).
			Msg("Source delivered fewer reviews than declared")
	}

	for id, n := range o.dupes.Dupes() {
		DuplicateIDs.Add(float64(n))
		o.logger.Warn().
			Str("id", id).
			Int("duplicates", n).
			Msg("Duplicate review identifier")
	}

	o.logger.Debug().
		Str("cursor", stream.Cursor()).
		Msg("Final cursor")

	o.logger.Info().
		Str("collection", o.collection).
		Int("files", o.fileIndex).
		Msg("Run finished")
}

// maxed reports whether the configured file limit has been reached.
func (o *Orchestrator) maxed() bool {
	return o.cfg.MaxFiles > 0 && o.fileIndex >= o.cfg.MaxFiles
}

func (o *Orchestrator) recordWriteError(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.writeErr == nil {
		o.writeErr = err
	}
}

// writeError returns the first writer failure, if any.
func (o *Orchestrator) writeError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.writeErr
}

// Total returns the expected-remaining count after the run: zero when the
// source delivered exactly what it declared.
func (o *Orchestrator) Total() int64 {
	return o.total
}

// FilesWritten returns the number of batches dispatched.
func (o *Orchestrator) FilesWritten() int {
	return o.fileIndex
}

// Dupes returns the duplicate identifiers observed during the run.
func (o *Orchestrator) Dupes() map[string]int {
	return o.dupes.Dupes()
}
