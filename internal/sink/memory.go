package sink

import (
	"context"
	"fmt"
	"sync"

	"leo/internal/hierarchy"
)

// MemorySink keeps every record it receives.
type MemorySink struct {
	mu      sync.Mutex
	records []hierarchy.Record
}

// NewMemory returns an empty memory sink.
func NewMemory() *MemorySink { return &MemorySink{} }

func buildMemory(hierarchy.SinkSpec) (hierarchy.Sink, error) { return NewMemory(), nil }

// Write implements hierarchy.Sink.
func (s *MemorySink) Write(_ context.Context, rec hierarchy.Record) error {
	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
	return nil
}

// Records returns a copy of the stored records.
func (s *MemorySink) Records() []hierarchy.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]hierarchy.Record(nil), s.records...)
}

// Lines renders the stored records as "level: message".
func (s *MemorySink) Lines() []string {
	records := s.Records()
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = fmt.Sprintf("%s: %s", rec.Level, rec.Message)
	}
	return lines
}

// Reset drops the stored records.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()
}
