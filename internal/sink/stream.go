package sink

import (
	"context"
	"errors"
	"fmt"

	"leo/internal/hierarchy"
	"leo/internal/logging"
)

// StreamSink publishes records to a logging.StreamHub.
type StreamSink struct {
	hub *logging.StreamHub
}

// NewStream returns a sink publishing to hub.
func NewStream(hub *logging.StreamHub) *StreamSink { return &StreamSink{hub: hub} }

func (f *Factory) buildStream(hierarchy.SinkSpec) (hierarchy.Sink, error) {
	if f.hub == nil {
		return nil, errors.New("stream sink: factory has no stream hub")
	}
	return NewStream(f.hub), nil
}

// Write implements hierarchy.Sink.
func (s *StreamSink) Write(_ context.Context, rec hierarchy.Record) error {
	var fields map[string]string
	if len(rec.Metadata) > 0 {
		fields = make(map[string]string, len(rec.Metadata))
		for k, v := range rec.Metadata {
			fields[k] = fmt.Sprint(v)
		}
	}
	s.hub.Publish(logging.LogEvent{
		Timestamp: rec.Time.UTC(),
		Level:     rec.Level,
		Message:   rec.Message,
		Logger:    rec.Logger,
		Origin:    rec.Origin,
		EventID:   rec.EventID,
		Fields:    fields,
	})
	return nil
}
