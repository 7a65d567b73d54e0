package hierarchy

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"leo/internal/logging"
)

// ConsoleSinkName is the sink name that suppresses the default silent
// console sink when configured explicitly.
const ConsoleSinkName = "console"

// Option configures a Registry.
type Option func(*options)

type options struct {
	levels    Levels
	decorator Decorator
	propagate bool
	builder   SinkBuilder
	logger    *slog.Logger
}

// WithLevels replaces the default NPMLevels severity map.
func WithLevels(levels Levels) Option {
	return func(o *options) {
		if len(levels) > 0 {
			o.levels = levels.Clone()
		}
	}
}

// WithDecorator sets the message decorator applied by every logger.
// A nil decorator disables decoration.
func WithDecorator(d Decorator) Option { return func(o *options) { o.decorator = d } }

// WithoutDecoration disables message decoration.
func WithoutDecoration() Option { return WithDecorator(nil) }

// WithPropagation toggles forwarding for the whole registry. Enabled by default.
func WithPropagation(enabled bool) Option { return func(o *options) { o.propagate = enabled } }

// WithSinkBuilder sets the builder used for configured sinks.
func WithSinkBuilder(b SinkBuilder) Option { return func(o *options) { o.builder = b } }

// WithLogger sets the logger used for the registry's own diagnostics.
func WithLogger(logger *slog.Logger) Option { return func(o *options) { o.logger = logger } }

// AddOption configures a single Add call.
type AddOption func(*addOptions)

type addOptions struct {
	propagate bool
	configs   map[string]SinkConfig
	sinks     map[string]Sink
}

// Propagate sets whether the logger forwards its events. Defaults to true.
func Propagate(enabled bool) AddOption { return func(o *addOptions) { o.propagate = enabled } }

// WithSinkConfig configures a sink to be built by the registry's SinkBuilder.
func WithSinkConfig(name string, cfg SinkConfig) AddOption {
	return func(o *addOptions) {
		if o.configs == nil {
			o.configs = make(map[string]SinkConfig)
		}
		o.configs[name] = cfg
	}
}

// WithSink attaches an already constructed sink under name. It takes
// precedence over a configuration with the same name.
func WithSink(name string, s Sink) AddOption {
	return func(o *addOptions) {
		if o.sinks == nil {
			o.sinks = make(map[string]Sink)
		}
		o.sinks[name] = s
	}
}

// Registry owns loggers by name and the propagation chain table derived
// from them. It is safe for concurrent use.
type Registry struct {
	opts   options
	logger *slog.Logger

	mu      sync.RWMutex
	loggers map[string]*Logger
	chains  map[string][]string
}

// New constructs an empty registry.
func New(opts ...Option) *Registry {
	o := options{
		levels:    NPMLevels.Clone(),
		decorator: DefaultDecorator,
		propagate: true,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return &Registry{
		opts:    o,
		logger:  logging.NewComponentLogger(o.logger, "registry"),
		loggers: make(map[string]*Logger),
		chains:  make(map[string][]string),
	}
}

// Levels returns a copy of the registry's severity map.
func (r *Registry) Levels() Levels { return r.opts.levels.Clone() }

// Propagates reports whether forwarding is enabled registry-wide.
func (r *Registry) Propagates() bool { return r.opts.propagate }

// Add creates or replaces the logger called name and rebuilds the chain
// table. It fails only when a configured sink cannot be built, in which case
// the registry is left unchanged.
func (r *Registry) Add(name string, opts ...AddOption) (*Logger, error) {
	return r.add(name, false, opts...)
}

// Get returns the logger called name, creating it with default options when
// it is unknown. Unknown names fail with ErrUninitializedRoot until the root
// logger exists.
func (r *Registry) Get(name string) (*Logger, error) {
	r.mu.RLock()
	l, ok := r.loggers[name]
	_, hasRoot := r.loggers[RootName]
	r.mu.RUnlock()
	if ok {
		return l, nil
	}
	if !hasRoot {
		return nil, &UninitializedRootError{Name: name}
	}
	return r.add(name, true)
}

// Has reports whether a logger called name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.loggers[name]
	return ok
}

// Names returns all logger names in lexicographic order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Chains returns a copy of the propagation chain table.
func (r *Registry) Chains() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]string, len(r.chains))
	for name, chain := range r.chains {
		out[name] = append([]string{}, chain...)
	}
	return out
}

// Close closes every sink that implements io.Closer.
func (r *Registry) Close() error {
	r.mu.RLock()
	loggers := make([]*Logger, 0, len(r.loggers))
	for _, l := range r.loggers {
		loggers = append(loggers, l)
	}
	r.mu.RUnlock()

	var errs []error
	for _, l := range loggers {
		if err := l.closeSinks(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) add(name string, onlyIfAbsent bool, opts ...AddOption) (*Logger, error) {
	o := addOptions{propagate: true}
	for _, fn := range opts {
		fn(&o)
	}
	if r.opts.propagate {
		_, configured := o.configs[ConsoleSinkName]
		_, attached := o.sinks[ConsoleSinkName]
		if !configured && !attached {
			WithSinkConfig(ConsoleSinkName, SinkConfig{"silent": true})(&o)
		}
	}

	sinks, err := r.buildSinks(name, o)
	if err != nil {
		return nil, err
	}
	logger := &Logger{
		name:      name,
		propagate: o.propagate,
		sinks:     sinks,
		decorator: r.opts.decorator,
		registry:  r,
	}

	r.mu.Lock()
	if existing, ok := r.loggers[name]; ok && onlyIfAbsent {
		r.mu.Unlock()
		_ = logger.closeSinks()
		return existing, nil
	}
	previous := r.loggers[name]
	r.loggers[name] = logger
	r.rebuildLocked()
	chain := append([]string{}, r.chains[name]...)
	r.mu.Unlock()

	if previous != nil {
		if err := previous.closeSinks(); err != nil {
			logging.WarnWithContext(r.logger, "replaced logger sinks failed to close", "sink_close_failed",
				logging.String("logger", name),
				logging.Error(err),
				logging.String(logging.FieldImpact, "sink resources of the replaced logger may leak"),
			)
		}
	}
	r.logger.Debug("logger added",
		logging.String("logger", name),
		logging.Bool("propagate", o.propagate),
		logging.Int("sinks", len(sinks)),
		logging.Any("chain", chain),
		logging.Bool("replaced", previous != nil),
	)
	return logger, nil
}

func (r *Registry) buildSinks(loggerName string, o addOptions) ([]namedSink, error) {
	sinks := make([]namedSink, 0, len(o.configs)+len(o.sinks))
	for name, s := range o.sinks {
		if s == nil {
			continue
		}
		sinks = append(sinks, namedSink{name: name, sink: s})
	}
	for name, cfg := range o.configs {
		if _, ok := o.sinks[name]; ok {
			continue
		}
		if cfg.Silent() {
			sinks = append(sinks, namedSink{name: name, sink: Discard})
			continue
		}
		if r.opts.builder == nil {
			closeNamed(sinks)
			return nil, fmt.Errorf("logger %q sink %q: %w", loggerName, name, ErrNoSinkBuilder)
		}
		s, err := r.opts.builder.BuildSink(SinkSpec{
			Logger: loggerName,
			Name:   name,
			Config: cfg,
			Levels: r.opts.levels.Clone(),
		})
		if err != nil {
			closeNamed(sinks)
			return nil, fmt.Errorf("logger %q sink %q: %w", loggerName, name, err)
		}
		sinks = append(sinks, namedSink{name: name, sink: s})
	}
	sort.Slice(sinks, func(i, j int) bool { return sinks[i].name < sinks[j].name })
	return sinks, nil
}

func (r *Registry) rebuildLocked() {
	flags := make(map[string]bool, len(r.loggers))
	for name, l := range r.loggers {
		flags[name] = l.propagate
	}
	r.chains = BuildChains(flags)
	r.logger.Debug("propagation chains rebuilt", logging.Int("loggers", len(flags)))
}

// nextHop returns the first logger of name's chain, if forwarding applies.
func (r *Registry) nextHop(name string) (*Logger, bool) {
	if !r.opts.propagate {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	chain := r.chains[name]
	if len(chain) == 0 {
		return nil, false
	}
	target, ok := r.loggers[chain[0]]
	return target, ok
}

func closeNamed(sinks []namedSink) {
	for _, s := range sinks {
		if c, ok := s.sink.(io.Closer); ok {
			_ = c.Close()
		}
	}
}
