package logging

import (
	"context"
	"log/slog"
)

// levelOverrideHandler enforces a per-component minimum level while
// delegating output to the wrapped handler, which should be configured with
// the most verbose level needed globally.
type levelOverrideHandler struct {
	next  slog.Handler
	level slog.Level
}

func newLevelOverrideHandler(next slog.Handler, level slog.Level) slog.Handler {
	if next == nil {
		return NoopHandler{}
	}
	return &levelOverrideHandler{next: next, level: level}
}

func (h *levelOverrideHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *levelOverrideHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level < h.level {
		return nil
	}
	return h.next.Handle(ctx, record)
}

func (h *levelOverrideHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelOverrideHandler{next: h.next.WithAttrs(attrs), level: h.level}
}

func (h *levelOverrideHandler) WithGroup(name string) slog.Handler {
	return &levelOverrideHandler{next: h.next.WithGroup(name), level: h.level}
}

func (h *levelOverrideHandler) CloneWithLevel(level slog.Level) slog.Handler {
	return &levelOverrideHandler{next: h.next, level: level}
}

// WithLevelOverride returns a logger that enforces the provided minimum level
// while preserving existing attributes and handler wiring. Unlike a plain
// handler level, the override may be more verbose than the base logger, so
// the base handler must accept that level for records to appear.
func WithLevelOverride(logger *slog.Logger, level slog.Level) *slog.Logger {
	if logger == nil {
		return slog.New(newLevelOverrideHandler(nil, level))
	}
	if cloner, ok := logger.Handler().(interface{ CloneWithLevel(slog.Level) slog.Handler }); ok {
		return slog.New(cloner.CloneWithLevel(level))
	}
	return slog.New(newLevelOverrideHandler(logger.Handler(), level))
}

// ComponentLogger returns a component logger honoring a per-component level
// from overrides, keyed by component name.
func ComponentLogger(logger *slog.Logger, component string, overrides map[string]string) *slog.Logger {
	base := NewComponentLogger(logger, component)
	if level, ok := overrides[component]; ok && level != "" {
		return WithLevelOverride(base, ParseLevel(level))
	}
	return base
}
