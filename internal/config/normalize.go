package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeRegistry()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return c.normalizeLoggers()
}

func (c *Config) normalizeRegistry() {
	if len(c.Registry.Levels) == 0 {
		c.Registry.Levels = nil
		return
	}
	levels := make(map[string]int, len(c.Registry.Levels))
	for name, sev := range c.Registry.Levels {
		levels[strings.ToLower(strings.TrimSpace(name))] = sev
	}
	c.Registry.Levels = levels
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	if len(c.Logging.ComponentLevels) > 0 {
		levels := make(map[string]string, len(c.Logging.ComponentLevels))
		for component, level := range c.Logging.ComponentLevels {
			key := strings.ToLower(strings.TrimSpace(component))
			if key == "" {
				continue
			}
			levels[key] = strings.ToLower(strings.TrimSpace(level))
		}
		c.Logging.ComponentLevels = levels
	}
	return nil
}

func (c *Config) normalizeLoggers() error {
	if len(c.Loggers) == 0 {
		c.Loggers = defaultLoggers()
		return nil
	}
	for i := range c.Loggers {
		logger := &c.Loggers[i]
		logger.Name = strings.TrimSpace(logger.Name)
		for name, sink := range logger.Sinks {
			if sink == nil {
				sink = Sink{}
				logger.Sinks[name] = sink
			}
			if level, ok := sink["level"].(string); ok {
				sink["level"] = strings.ToLower(strings.TrimSpace(level))
			}
			if path, ok := sink["path"].(string); ok {
				expanded, err := expandPath(strings.TrimSpace(path))
				if err != nil {
					return fmt.Errorf("loggers[%s].sinks.%s.path: %w", logger.Name, name, err)
				}
				sink["path"] = expanded
			}
		}
	}
	return nil
}
