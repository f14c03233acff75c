package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// GridPath is a .hcl file or a directory of .hcl files.
	GridPath string
	// Target, when set, resolves only the named task instead of running
	// the whole grid.
	Target string
	// Interactive starts a REPL session instead of a grid run.
	Interactive bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates the configuration and returns it ready for use.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GridPath == "" && !cfg.Interactive {
		return nil, errors.New("GridPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
