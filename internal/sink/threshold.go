package sink

import (
	"context"
	"io"

	"leo/internal/hierarchy"
)

// thresholdSink skips records less severe than threshold.
type thresholdSink struct {
	next      hierarchy.Sink
	levels    hierarchy.Levels
	threshold string
}

func (s *thresholdSink) Write(ctx context.Context, rec hierarchy.Record) error {
	if !s.levels.Enabled(rec.Level, s.threshold) {
		return nil
	}
	return s.next.Write(ctx, rec)
}

func (s *thresholdSink) Close() error {
	if c, ok := s.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Unwrap returns the filtered sink.
func (s *thresholdSink) Unwrap() hierarchy.Sink { return s.next }
