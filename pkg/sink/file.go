package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/el-remph/hertzian-steam-tech-test/pkg/logging"
	"github.com/rs/zerolog"
)

// FileSink writes each batch as one tab-indented JSON array to
// <dir>/<collection>.<index>.json.
type FileSink struct {
	dir    string
	logger zerolog.Logger
}

// NewFileSink creates a file sink rooted at dir, creating it if needed.
// An empty dir means the current working directory.
func NewFileSink(dir string) (*FileSink, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &FileSink{
		dir:    dir,
		logger: logging.NewLogger("file-sink"),
	}, nil
}

// Write implements Sink.
func (s *FileSink) Write(_ context.Context, b Batch) error {
	path := filepath.Join(s.dir, b.Name())

	data, err := json.MarshalIndent(b.Records, "", "\t")
	if err != nil {
		WriteErrors.WithLabelValues("file").Inc()
		return &StorageError{Dest: path, Err: err}
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		WriteErrors.WithLabelValues("file").Inc()
		return &StorageError{Dest: path, Err: err}
	}

	BatchesWritten.WithLabelValues("file").Inc()
	RecordsWritten.WithLabelValues("file").Add(float64(len(b.Records)))

	s.logger.Info().
		Str("destination", path).
		Int("file_index", b.Index).
		Int("records", len(b.Records)).
		Msg("Wrote batch")

	return nil
}
