package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envOverrides holds raw QUESTGEN_* values. Unset variables leave the file
// values alone.
type envOverrides struct {
	OutputDir           string   `env:"QUESTGEN_OUTPUT_DIR"`
	FileExt             string   `env:"QUESTGEN_FILE_EXT"`
	HistoryPath         string   `env:"QUESTGEN_HISTORY_PATH"`
	HistoryEnabled      *bool    `env:"QUESTGEN_HISTORY_ENABLED"`
	LogLevel            string   `env:"QUESTGEN_LOG_LEVEL"`
	PlaceholderKey      string   `env:"QUESTGEN_PLACEHOLDER_KEY"`
	PlaceholderValue    string   `env:"QUESTGEN_PLACEHOLDER_VALUE"`
	PlaceholderProgress string   `env:"QUESTGEN_PLACEHOLDER_PROGRESS"`
	WatchSchedule       string   `env:"QUESTGEN_WATCH_SCHEDULE"`
	AllowedPaths        []string `env:"QUESTGEN_ALLOWED_PATHS" envSeparator:","`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ApplyEnv overlays QUESTGEN_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var e envOverrides
	if err := ParseEnv(&e); err != nil {
		return err
	}

	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&cfg.OutputDir, e.OutputDir)
	set(&cfg.FileExt, e.FileExt)
	set(&cfg.History.Path, e.HistoryPath)
	set(&cfg.Logging.Level, e.LogLevel)
	set(&cfg.Placeholders.Key, e.PlaceholderKey)
	set(&cfg.Placeholders.Value, e.PlaceholderValue)
	set(&cfg.Placeholders.Progress, e.PlaceholderProgress)
	set(&cfg.Watch.Schedule, e.WatchSchedule)
	if e.HistoryEnabled != nil {
		cfg.History.Enabled = *e.HistoryEnabled
	}
	if len(e.AllowedPaths) > 0 {
		cfg.Security.AllowedPaths = e.AllowedPaths
	}
	return nil
}
