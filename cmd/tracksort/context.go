package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"tracksort/internal/config"
	"tracksort/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) resolvedLogLevel(cfg *config.Config) string {
	if c.logLevelFlag != nil {
		if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
			return level
		}
	}
	return cfg.Logging.Level
}

// newLogger builds the run logger. Output goes to the run log file under the
// log dir; verbose additionally mirrors records to stderr so the console
// stays reserved for per-file result lines.
func (c *commandContext) newLogger(cfg *config.Config, verbose bool) (*slog.Logger, error) {
	paths := []string{filepath.Join(cfg.Paths.LogDir, "tracksort.log")}
	if verbose {
		paths = append(paths, "stderr")
	}
	return logging.New(logging.Options{
		Level:       c.resolvedLogLevel(cfg),
		Format:      cfg.Logging.Format,
		OutputPaths: paths,
	})
}
