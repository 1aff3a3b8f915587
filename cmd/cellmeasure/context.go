package main

import (
	"os"
	"strings"
	"sync"

	"github.com/banshee-data/cellmeasure/internal/config"
	"github.com/banshee-data/cellmeasure/internal/monitoring"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.RunConfig
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

// ensureConfig loads the run configuration once and installs the logger
// at the configured level. A --log-level flag wins over the file.
func (c *commandContext) ensureConfig() (*config.RunConfig, error) {
	c.configOnce.Do(func() {
		cfg := config.EmptyRunConfig()
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			loaded, err := config.LoadRunConfig(path)
			if err != nil {
				c.configErr = err
				return
			}
			cfg = loaded
		}
		if lvl := strings.TrimSpace(*c.logLevelFlag); lvl != "" {
			cfg.LogLevel = &lvl
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}

		level, err := monitoring.ParseLevel(cfg.GetLogLevel())
		if err != nil {
			c.configErr = err
			return
		}
		monitoring.Use(monitoring.NewLogger(os.Stderr, level))
		c.config = cfg
	})
	return c.config, c.configErr
}
