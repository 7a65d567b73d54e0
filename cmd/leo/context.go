package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"leo/internal/config"
	"leo/internal/hierarchy"
	"leo/internal/logging"
	"leo/internal/registryrun"
	"leo/internal/sink"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// diagnostics returns the CLI's own logger built from the [logging] section.
func (c *commandContext) diagnostics() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = registryrun.NewLogger(cfg)
	})
	return c.logger, c.loggerErr
}

// buildRegistry assembles the configured hierarchy. Console sinks write to
// the command's output streams.
func (c *commandContext) buildRegistry(cmd *cobra.Command, factoryOpts []sink.Option, attach func(string) []hierarchy.AddOption) (*hierarchy.Registry, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	base, err := c.diagnostics()
	if err != nil {
		return nil, nil, err
	}
	opts := append([]sink.Option{sink.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())}, factoryOpts...)
	reg, err := registryrun.Build(cfg, registryrun.Options{
		Logger:  registryrun.Scoped(base, cfg, "registry"),
		Builder: sink.NewFactory(opts...),
		Attach:  attach,
	})
	if err != nil {
		return nil, nil, err
	}
	cli := logging.NewComponentLogger(registryrun.Scoped(base, cfg, "cli"), "cli")
	cli.Debug("registry built",
		logging.String("config", c.configPath),
		logging.Int("loggers", len(reg.Names())),
	)
	return reg, cli, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
