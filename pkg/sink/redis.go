package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/el-remph/hertzian-steam-tech-test/pkg/logging"
	"github.com/el-remph/hertzian-steam-tech-test/pkg/review"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisSink stores each batch as a JSON payload under
// <prefix>:<collection>:<index>. Entries never expire; a run's output is
// durable until explicitly removed.
type RedisSink struct {
	client *redis.Client
	prefix string
	logger zerolog.Logger
}

// NewRedisSink creates a Redis-backed sink.
func NewRedisSink(client *redis.Client, prefix string) (*RedisSink, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if prefix == "" {
		prefix = "reviews"
	}
	return &RedisSink{
		client: client,
		prefix: prefix,
		logger: logging.NewLogger("redis-sink"),
	}, nil
}

func (s *RedisSink) key(collection string, index int) string {
	return fmt.Sprintf("%s:%s:%d", s.prefix, collection, index)
}

// Write implements Sink.
func (s *RedisSink) Write(ctx context.Context, b Batch) error {
	key := s.key(b.Collection, b.Index)

	data, err := json.Marshal(b.Records)
	if err != nil {
		WriteErrors.WithLabelValues("redis").Inc()
		return &StorageError{Dest: key, Err: err}
	}

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		WriteErrors.WithLabelValues("redis").Inc()
		return &StorageError{Dest: key, Err: fmt.Errorf("redis set: %w", err)}
	}

	BatchesWritten.WithLabelValues("redis").Inc()
	RecordsWritten.WithLabelValues("redis").Add(float64(len(b.Records)))

	s.logger.Info().
		Str("destination", key).
		Int("file_index", b.Index).
		Int("records", len(b.Records)).
		Msg("Wrote batch")

	return nil
}

// Read loads a previously written batch, mainly for verification and tests.
func (s *RedisSink) Read(ctx context.Context, collection string, index int) ([]review.Record, error) {
	key := s.key(collection, index)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var records []review.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode batch %s: %w", key, err)
	}
	return records, nil
}
