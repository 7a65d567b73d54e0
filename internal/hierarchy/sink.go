package hierarchy

import (
	"context"
	"time"
)

// Metadata carries structured fields attached to a log event.
type Metadata map[string]any

// Record is what a sink receives for every event that reaches its logger.
type Record struct {
	// Logger is the logger owning the sink.
	Logger string
	// Origin is the logger the event was first logged on.
	Origin string
	// EventID is shared by every delivery of one event.
	EventID  string
	Time     time.Time
	Level    string
	Severity int
	Message  string
	Metadata Metadata
}

// Sink performs the actual write of a record.
type Sink interface {
	Write(ctx context.Context, rec Record) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, rec Record) error

func (f SinkFunc) Write(ctx context.Context, rec Record) error { return f(ctx, rec) }

// SinkConfig is sink-specific configuration, keyed by option name.
type SinkConfig map[string]any

// Silent reports whether the configuration disables output entirely.
func (c SinkConfig) Silent() bool {
	v, ok := c["silent"].(bool)
	return ok && v
}

// String returns a string option or fallback.
func (c SinkConfig) String(key, fallback string) string {
	if v, ok := c[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// SinkSpec describes one sink to build for a logger.
type SinkSpec struct {
	Logger string
	Name   string
	Config SinkConfig
	Levels Levels
}

// SinkBuilder turns a sink specification into a Sink.
type SinkBuilder interface {
	BuildSink(spec SinkSpec) (Sink, error)
}

// Discard drops every record.
var Discard Sink = SinkFunc(func(context.Context, Record) error { return nil })

type namedSink struct {
	name string
	sink Sink
}
