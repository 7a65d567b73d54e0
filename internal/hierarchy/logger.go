package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

var timeNow = time.Now // to facilitate testing

// Logger is a named node of a Registry. Loggers are created by Registry.Add
// or Registry.Get and live as long as the registry.
type Logger struct {
	name      string
	propagate bool
	sinks     []namedSink
	decorator Decorator
	registry  *Registry
}

// Name returns the logger name.
func (l *Logger) Name() string { return l.name }

// Propagates reports whether the logger forwards events to its ancestors.
func (l *Logger) Propagates() bool { return l.propagate }

// Sinks returns the names of the logger's sinks in write order.
func (l *Logger) Sinks() []string {
	names := make([]string, len(l.sinks))
	for i, s := range l.sinks {
		names[i] = s.name
	}
	return names
}

type event struct {
	id       string
	origin   string
	time     time.Time
	level    string
	severity int
	message  string
	meta     Metadata
}

// Log writes message at level to the logger's sinks and then forwards it up
// the propagation chain. Every hop completes before Log returns. Sink
// failures do not stop forwarding; they are returned joined.
func (l *Logger) Log(ctx context.Context, level, message string, meta Metadata) error {
	sev, ok := l.registry.opts.levels.Severity(level)
	if !ok {
		return fmt.Errorf("logger %q level %q: %w", l.name, level, ErrUnknownLevel)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return l.handle(ctx, event{
		id:       uuid.NewString(),
		origin:   l.name,
		time:     timeNow(),
		level:    level,
		severity: sev,
		message:  message,
		meta:     meta,
	})
}

func (l *Logger) handle(ctx context.Context, ev event) error {
	if l.decorator != nil {
		ev.message = l.decorator(l.name, ev.message)
	}
	rec := Record{
		Logger:   l.name,
		Origin:   ev.origin,
		EventID:  ev.id,
		Time:     ev.time,
		Level:    ev.level,
		Severity: ev.severity,
		Message:  ev.message,
		Metadata: ev.meta,
	}

	var errs []error
	for _, s := range l.sinks {
		if err := s.sink.Write(ctx, rec); err != nil {
			errs = append(errs, fmt.Errorf("logger %q sink %q: %w", l.name, s.name, err))
		}
	}
	if l.propagate {
		if next, ok := l.registry.nextHop(l.name); ok {
			if err := next.handle(ctx, ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Error logs at the "error" level.
func (l *Logger) Error(ctx context.Context, message string, meta Metadata) error {
	return l.Log(ctx, LevelError, message, meta)
}

// Warn logs at the "warn" level.
func (l *Logger) Warn(ctx context.Context, message string, meta Metadata) error {
	return l.Log(ctx, LevelWarn, message, meta)
}

// Info logs at the "info" level.
func (l *Logger) Info(ctx context.Context, message string, meta Metadata) error {
	return l.Log(ctx, LevelInfo, message, meta)
}

// HTTP logs at the "http" level.
func (l *Logger) HTTP(ctx context.Context, message string, meta Metadata) error {
	return l.Log(ctx, LevelHTTP, message, meta)
}

// Verbose logs at the "verbose" level.
func (l *Logger) Verbose(ctx context.Context, message string, meta Metadata) error {
	return l.Log(ctx, LevelVerbose, message, meta)
}

// Debug logs at the "debug" level.
func (l *Logger) Debug(ctx context.Context, message string, meta Metadata) error {
	return l.Log(ctx, LevelDebug, message, meta)
}

// Silly logs at the "silly" level.
func (l *Logger) Silly(ctx context.Context, message string, meta Metadata) error {
	return l.Log(ctx, LevelSilly, message, meta)
}

func (l *Logger) closeSinks() error {
	var errs []error
	for _, s := range l.sinks {
		c, ok := s.sink.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close logger %q sink %q: %w", l.name, s.name, err))
		}
	}
	return errors.Join(errs...)
}
