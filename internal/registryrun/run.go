// Package registryrun assembles a hierarchy.Registry and the CLI's
// diagnostics logger from a loaded configuration.
package registryrun

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"leo/internal/config"
	"leo/internal/hierarchy"
	"leo/internal/logging"
	"leo/internal/sink"
)

// Options configures Build.
type Options struct {
	// Logger receives the registry's own diagnostics.
	Logger *slog.Logger
	// Builder turns sink configuration into sinks. Defaults to sink.NewFactory().
	Builder hierarchy.SinkBuilder
	// Attach returns extra Add options for each declared logger.
	Attach func(loggerName string) []hierarchy.AddOption
}

// Build creates a registry and adds every declared logger, root first and
// the rest in declaration order.
func Build(cfg *config.Config, opts Options) (*hierarchy.Registry, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	builder := opts.Builder
	if builder == nil {
		builder = sink.NewFactory()
	}

	regOpts := []hierarchy.Option{
		hierarchy.WithLevels(cfg.Levels()),
		hierarchy.WithPropagation(cfg.Registry.Propagate),
		hierarchy.WithSinkBuilder(builder),
		hierarchy.WithLogger(opts.Logger),
	}
	if !cfg.Registry.Decorate {
		regOpts = append(regOpts, hierarchy.WithoutDecoration())
	}
	reg := hierarchy.New(regOpts...)

	for _, decl := range declarationOrder(cfg.Loggers) {
		addOpts := []hierarchy.AddOption{hierarchy.Propagate(decl.Propagates())}
		for name, sinkCfg := range decl.Sinks {
			addOpts = append(addOpts, hierarchy.WithSinkConfig(name, hierarchy.SinkConfig(sinkCfg)))
		}
		if opts.Attach != nil {
			addOpts = append(addOpts, opts.Attach(decl.Name)...)
		}
		if _, err := reg.Add(decl.Name, addOpts...); err != nil {
			if closeErr := reg.Close(); closeErr != nil {
				err = errors.Join(err, closeErr)
			}
			return nil, fmt.Errorf("build registry: %w", err)
		}
	}
	return reg, nil
}

func declarationOrder(loggers []config.Logger) []config.Logger {
	ordered := make([]config.Logger, 0, len(loggers))
	for _, l := range loggers {
		if l.Name == hierarchy.RootName {
			ordered = append(ordered, l)
		}
	}
	for _, l := range loggers {
		if l.Name != hierarchy.RootName {
			ordered = append(ordered, l)
		}
	}
	return ordered
}

// NewLogger constructs the diagnostics logger described by the [logging]
// section. The base handler runs at the most verbose configured level so
// component overrides below the global level still reach it; use Scoped to
// apply the effective level per component.
func NewLogger(cfg *config.Config) (*slog.Logger, error) {
	opts := cfg.LoggingOptions()
	opts.Level = VerbosestLevel(cfg.Logging.Level, cfg.Logging.ComponentLevels)
	return logging.New(opts)
}

// Scoped returns base limited to the level configured for component,
// falling back to the global logging level.
func Scoped(base *slog.Logger, cfg *config.Config, component string) *slog.Logger {
	level := cfg.Logging.Level
	if override := cfg.Logging.ComponentLevels[component]; override != "" {
		level = override
	}
	return logging.WithLevelOverride(base, logging.ParseLevel(level))
}

// VerbosestLevel returns the most verbose of level and overrides.
func VerbosestLevel(level string, overrides map[string]string) string {
	lowest := logging.ParseLevel(level)
	for _, value := range overrides {
		if parsed := logging.ParseLevel(value); parsed < lowest {
			lowest = parsed
		}
	}
	return strings.ToLower(lowest.String())
}
