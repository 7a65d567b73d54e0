package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"leo/internal/hierarchy"
	"leo/internal/logging"
)

var (
	// ErrUnknownKind indicates a sink kind with no registered builder.
	ErrUnknownKind = errors.New("sink: unknown kind")
	// ErrDuplicateKind indicates an attempt to register a kind twice.
	ErrDuplicateKind = errors.New("sink: duplicate kind")
	// ErrUnknownLevel indicates a threshold missing from the levels map.
	ErrUnknownLevel = errors.New("sink: unknown level")
)

// Builder constructs a sink of one kind.
type Builder func(spec hierarchy.SinkSpec) (hierarchy.Sink, error)

// Factory builds sinks by kind. It implements hierarchy.SinkBuilder and is
// safe for concurrent use.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]Builder

	hub    *logging.StreamHub
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Factory.
type Option func(*Factory)

// WithStreamHub sets the hub that stream sinks publish to.
func WithStreamHub(hub *logging.StreamHub) Option { return func(f *Factory) { f.hub = hub } }

// WithOutput overrides the writers console sinks use for stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(f *Factory) {
		f.stdout = stdout
		f.stderr = stderr
	}
}

// NewFactory returns a factory with every stock kind registered.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		builders: make(map[string]Builder),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, fn := range opts {
		fn(f)
	}
	f.builders["console"] = f.buildConsole
	f.builders["file"] = buildFile
	f.builders["memory"] = buildMemory
	f.builders["stream"] = f.buildStream
	f.builders["zap"] = buildZap
	f.builders["discard"] = func(hierarchy.SinkSpec) (hierarchy.Sink, error) { return hierarchy.Discard, nil }
	return f
}

// Register adds a builder for kind. Kinds are case-insensitive.
func (f *Factory) Register(kind string, b Builder) error {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" || b == nil {
		return errors.New("sink: invalid kind or builder")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.builders[kind]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, kind)
	}
	f.builders[kind] = b
	return nil
}

// Kinds returns the registered kinds in lexicographic order.
func (f *Factory) Kinds() []string {
	f.mu.RLock()
	kinds := make([]string, 0, len(f.builders))
	for kind := range f.builders {
		kinds = append(kinds, kind)
	}
	f.mu.RUnlock()
	sort.Strings(kinds)
	return kinds
}

// BuildSink implements hierarchy.SinkBuilder.
func (f *Factory) BuildSink(spec hierarchy.SinkSpec) (hierarchy.Sink, error) {
	if spec.Config.Silent() {
		return hierarchy.Discard, nil
	}
	kind := KindOf(spec.Name, spec.Config)

	f.mu.RLock()
	build, ok := f.builders[kind]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	threshold := strings.ToLower(spec.Config.String("level", ""))
	if threshold != "" {
		if _, known := spec.Levels.Severity(threshold); !known {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, threshold)
		}
	}

	s, err := build(spec)
	if err != nil {
		return nil, fmt.Errorf("build %s sink: %w", kind, err)
	}
	if threshold == "" {
		return s, nil
	}
	return &thresholdSink{next: s, levels: spec.Levels, threshold: threshold}, nil
}

// KindOf returns the sink kind for a sink declared under name.
func KindOf(name string, cfg hierarchy.SinkConfig) string {
	return strings.ToLower(strings.TrimSpace(cfg.String("kind", name)))
}
