package config

const (
	defaultConfigPath  = "~/.config/leo/config.toml"
	projectConfigName  = "leo.toml"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultRootSink    = "console"
	defaultRootSinkFmt = "auto"
)

// SinkKinds lists the sink kinds understood by the sink factory.
var SinkKinds = []string{"console", "file", "memory", "stream", "zap", "discard"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Registry: Registry{
			Decorate:  true,
			Propagate: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// defaultLoggers is used when a configuration declares no loggers at all.
func defaultLoggers() []Logger {
	return []Logger{{
		Name: "root",
		Sinks: map[string]Sink{
			defaultRootSink: {"format": defaultRootSinkFmt},
		},
	}}
}
