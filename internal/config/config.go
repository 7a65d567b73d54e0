package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"leo/internal/hierarchy"
	"leo/internal/logging"
)

//go:embed sample_config.toml
var sampleConfig string

// Registry contains hierarchy-wide options.
type Registry struct {
	// Decorate prefixes messages with "[logger name] ".
	Decorate bool `toml:"decorate"`
	// Propagate enables forwarding to ancestor loggers.
	Propagate bool `toml:"propagate"`
	// Levels replaces the npm severity map when set.
	Levels map[string]int `toml:"levels"`
}

// Logging contains configuration for the CLI's own diagnostics.
type Logging struct {
	Format          string            `toml:"format"`
	Level           string            `toml:"level"`
	File            string            `toml:"file"`
	ComponentLevels map[string]string `toml:"component_levels"`
}

// Sink is sink-specific configuration. The "kind" key selects the sink
// implementation and defaults to the sink's name.
type Sink map[string]any

// Kind returns the sink kind for a sink declared under name.
func (s Sink) Kind(name string) string {
	if kind, ok := s["kind"].(string); ok && strings.TrimSpace(kind) != "" {
		return strings.ToLower(strings.TrimSpace(kind))
	}
	return strings.ToLower(name)
}

// Logger declares one logger of the hierarchy.
type Logger struct {
	Name      string          `toml:"name"`
	Propagate *bool           `toml:"propagate"`
	Sinks     map[string]Sink `toml:"sinks"`
}

// Propagates reports the logger's propagate flag, defaulting to true.
func (l Logger) Propagates() bool {
	return l.Propagate == nil || *l.Propagate
}

// Config encapsulates all configuration values for leo.
//
// Configuration sections:
//   - Registry: decoration, global propagation and level names
//   - Logging: format, level and destination of the CLI's own logs
//   - Loggers: the declared hierarchy with per-logger sinks
type Config struct {
	Registry Registry `toml:"registry"`
	Logging  Logging  `toml:"logging"`
	Loggers  []Logger `toml:"loggers"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and level names canonicalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if os.IsNotExist(err) {
				return "", false, fmt.Errorf("config file %s does not exist", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Levels returns the effective severity map.
func (c *Config) Levels() hierarchy.Levels {
	if len(c.Registry.Levels) == 0 {
		return hierarchy.NPMLevels.Clone()
	}
	return hierarchy.Levels(c.Registry.Levels).Clone()
}

// LoggingOptions converts the [logging] section into logger construction options.
func (c *Config) LoggingOptions() logging.Options {
	outputs := []string{"stderr"}
	if c.Logging.File != "" {
		outputs = append(outputs, c.Logging.File)
	}
	return logging.Options{
		Level:       c.Logging.Level,
		Format:      c.Logging.Format,
		OutputPaths: outputs,
	}
}

// Logger returns the declared logger called name.
func (c *Config) Logger(name string) (Logger, bool) {
	for _, l := range c.Loggers {
		if l.Name == name {
			return l, true
		}
	}
	return Logger{}, false
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
