package steam

import (
	"context"

	"github.com/el-remph/hertzian-steam-tech-test/pkg/logging"
	"github.com/rs/zerolog"
)

type pageResult struct {
	env *Envelope
	err error
}

// Stream iterates a review listing page by page with a one-slot prefetch:
// exactly one request is in flight at any time, and the request for the
// following page is issued as soon as the current page's cursor is known,
// before the caller has processed the page. Pages are therefore fetched
// strictly sequentially, but their network latency overlaps with the
// caller's transform/sort/write work.
//
// Stream is not safe for concurrent use; it is driven by the single
// orchestrating loop of a run.
type Stream struct {
	client    *Client
	appID     int64
	basis     DateBasis
	cursor    string
	inflight  chan pageResult
	exhausted bool
	logger    zerolog.Logger
}

// NewStream creates a stream over appID's reviews and immediately starts
// fetching the first page.
func NewStream(ctx context.Context, client *Client, appID int64, basis DateBasis) *Stream {
	s := &Stream{
		client: client,
		appID:  appID,
		basis:  basis,
		cursor: StartCursor,
		logger: logging.NewLogger("steam-stream"),
	}
	s.prefetch(ctx, s.cursor)
	return s
}

// prefetch launches the request for the page at cursor. The result lands in
// a fresh one-slot channel so the goroutine never blocks, even if the
// stream is abandoned before the result is consumed.
func (s *Stream) prefetch(ctx context.Context, cursor string) {
	ch := make(chan pageResult, 1)
	s.inflight = ch
	go func() {
		env, err := s.client.FetchPage(ctx, s.appID, s.basis, cursor)
		ch <- pageResult{env: env, err: err}
	}()
}

// Next returns the page most recently prefetched and, unless that page was
// empty, immediately starts fetching the following one. A page with zero
// reviews is the end-of-stream signal; calling Next again afterwards
// returns ErrStreamExhausted.
func (s *Stream) Next(ctx context.Context) (*Envelope, error) {
	if s.exhausted {
		return nil, ErrStreamExhausted
	}

	var res pageResult
	select {
	case res = <-s.inflight:
	case <-ctx.Done():
		s.exhausted = true
		return nil, ctx.Err()
	}

	if res.err != nil {
		s.exhausted = true
		return nil, res.err
	}

	s.cursor = res.env.Cursor

	if len(res.env.Reviews) == 0 {
		s.exhausted = true
		s.logger.Debug().
			Int64("collection", s.appID).
			Str("cursor", s.cursor).
			Msg("End of review stream")
	} else {
		s.prefetch(ctx, s.cursor)
	}

	return res.env, nil
}

// Cursor returns the cursor received with the most recent page.
func (s *Stream) Cursor() string {
	return s.cursor
}
