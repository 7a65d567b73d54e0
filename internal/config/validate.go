package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"leo/internal/hierarchy"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRegistry(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateLoggers()
}

func (c *Config) validateRegistry() error {
	for name := range c.Registry.Levels {
		if name == "" {
			return errors.New("registry.levels: level names must not be empty")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateLoggers() error {
	levels := c.Levels()
	seen := make(map[string]struct{}, len(c.Loggers))
	for _, logger := range c.Loggers {
		if err := ValidateName(logger.Name); err != nil {
			return fmt.Errorf("loggers: %w", err)
		}
		if _, dup := seen[logger.Name]; dup {
			return fmt.Errorf("loggers: duplicate logger %q", logger.Name)
		}
		seen[logger.Name] = struct{}{}

		for sinkName, sink := range logger.Sinks {
			if strings.TrimSpace(sinkName) == "" {
				return fmt.Errorf("loggers[%s].sinks: sink names must not be empty", logger.Name)
			}
			kind := sink.Kind(sinkName)
			if !slices.Contains(SinkKinds, kind) {
				return fmt.Errorf("loggers[%s].sinks.%s: unknown sink kind %q", logger.Name, sinkName, kind)
			}
			if level, ok := sink["level"].(string); ok && level != "" {
				if _, known := levels.Severity(level); !known {
					return fmt.Errorf("loggers[%s].sinks.%s.level: unknown level %q", logger.Name, sinkName, level)
				}
			}
			if kind == "file" {
				if path, _ := sink["path"].(string); path == "" {
					return fmt.Errorf("loggers[%s].sinks.%s.path must be set for file sinks", logger.Name, sinkName)
				}
			}
		}
	}
	if _, ok := seen[hierarchy.RootName]; !ok {
		return fmt.Errorf("loggers: a %q logger must be declared", hierarchy.RootName)
	}
	return nil
}

// ValidateName rejects logger names the hierarchy cannot place: empty names,
// leading or trailing separators, and empty segments.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("logger name must not be empty")
	}
	for _, segment := range strings.Split(name, hierarchy.Separator) {
		if strings.TrimSpace(segment) == "" {
			return fmt.Errorf("logger name %q has an empty segment", name)
		}
	}
	return nil
}
