package sink

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"leo/internal/hierarchy"
	"leo/internal/logging"
)

// HandlerSink adapts an slog.Handler into a hierarchy sink. Each record
// becomes one slog record carrying the logger, origin, event ID and level
// name followed by the metadata in key order.
type HandlerSink struct {
	handler slog.Handler
	levels  hierarchy.Levels
	closer  io.Closer
}

// NewHandlerSink wraps h. levels maps hierarchy levels onto slog levels; the
// closer, when non-nil, is closed with the sink.
func NewHandlerSink(h slog.Handler, levels hierarchy.Levels, closer io.Closer) *HandlerSink {
	if levels == nil {
		levels = hierarchy.NPMLevels
	}
	return &HandlerSink{handler: h, levels: levels, closer: closer}
}

// Write implements hierarchy.Sink.
func (s *HandlerSink) Write(ctx context.Context, rec hierarchy.Record) error {
	level := SlogLevel(s.levels, rec.Severity)
	if !s.handler.Enabled(ctx, level) {
		return nil
	}
	r := slog.NewRecord(rec.Time, level, rec.Message, 0)
	r.AddAttrs(
		logging.String(logging.FieldLogger, rec.Logger),
		logging.String(logging.FieldOrigin, rec.Origin),
		logging.String(logging.FieldEventID, rec.EventID),
		logging.String(logging.FieldLevelName, rec.Level),
	)
	r.AddAttrs(metadataAttrs(rec.Metadata)...)
	return s.handler.Handle(ctx, r)
}

// Close closes the underlying writer, if any.
func (s *HandlerSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// SlogLevel maps a severity onto the nearest slog level using the error,
// warn and info entries of levels. Severities past info become debug.
func SlogLevel(levels hierarchy.Levels, severity int) slog.Level {
	bounds := []struct {
		name  string
		level slog.Level
	}{
		{hierarchy.LevelError, slog.LevelError},
		{hierarchy.LevelWarn, slog.LevelWarn},
		{hierarchy.LevelInfo, slog.LevelInfo},
	}
	matched := false
	for _, b := range bounds {
		limit, ok := levels.Severity(b.name)
		if !ok {
			continue
		}
		matched = true
		if severity <= limit {
			return b.level
		}
	}
	if !matched {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

func metadataAttrs(meta hierarchy.Metadata) []slog.Attr {
	if len(meta) == 0 {
		return nil
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, logging.Any(k, meta[k]))
	}
	return attrs
}
