package sink

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"leo/internal/hierarchy"
	"leo/internal/logging"
)

// ZapSink writes records as JSON through a zap logger.
type ZapSink struct {
	logger *zap.Logger
	levels hierarchy.Levels
	file   *os.File
}

// NewZap wraps an existing zap logger.
func NewZap(logger *zap.Logger, levels hierarchy.Levels) *ZapSink {
	if levels == nil {
		levels = hierarchy.NPMLevels
	}
	return &ZapSink{logger: logger, levels: levels}
}

func buildZap(spec hierarchy.SinkSpec) (hierarchy.Sink, error) {
	var (
		ws   zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
		file *os.File
	)
	if path := spec.Config.String("path", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("zap sink: open %s: %w", path, err)
		}
		file = f
		ws = zapcore.Lock(f)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.MessageKey = "msg"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), ws, zapcore.DebugLevel)

	s := NewZap(zap.New(core), spec.Levels)
	s.file = file
	return s, nil
}

// Write implements hierarchy.Sink.
func (s *ZapSink) Write(_ context.Context, rec hierarchy.Record) error {
	level := zapLevel(SlogLevel(s.levels, rec.Severity))
	ce := s.logger.Check(level, rec.Message)
	if ce == nil {
		return nil
	}
	fields := make([]zap.Field, 0, 4+len(rec.Metadata))
	fields = append(fields,
		zap.String(logging.FieldLogger, rec.Logger),
		zap.String(logging.FieldOrigin, rec.Origin),
		zap.String(logging.FieldEventID, rec.EventID),
		zap.String(logging.FieldLevelName, rec.Level),
	)
	keys := make([]string, 0, len(rec.Metadata))
	for k := range rec.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.Any(k, rec.Metadata[k]))
	}
	ce.Time = rec.Time
	ce.Write(fields...)
	return nil
}

// Close flushes the logger and closes its file, if any.
func (s *ZapSink) Close() error {
	_ = s.logger.Sync()
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
