// Package config loads questgen settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kayz/questgen/internal/quest"
)

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	OutputDir    string                  `yaml:"output_dir"`
	FileExt      string                  `yaml:"file_ext,omitempty"`
	Placeholders quest.PlaceholderFormat `yaml:"placeholders,omitempty"`
	History      HistoryConfig           `yaml:"history"`
	Watch        WatchConfig             `yaml:"watch,omitempty"`
	Security     SecurityConfig          `yaml:"security,omitempty"`
	Logging      LoggingConfig           `yaml:"logging"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	// StoreContent keeps the rendered text of each file in the database.
	StoreContent bool `yaml:"store_content"`
}

type WatchConfig struct {
	Schedule string `yaml:"schedule,omitempty"`
	Timeout  string `yaml:"timeout,omitempty"` // Go duration, e.g. "2m"
}

// SecurityConfig restricts where quest files may be written. The output
// directory is always allowed.
type SecurityConfig struct {
	AllowedPaths []string `yaml:"allowed_paths,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		OutputDir: "quests",
		FileExt:   ".yml",
		Placeholders: quest.PlaceholderFormat{
			Key:      quest.DefaultPlaceholderKey,
			Value:    quest.DefaultPlaceholderValue,
			Progress: quest.DefaultPlaceholderValue,
		},
		History: HistoryConfig{
			Enabled:      true,
			Path:         filepath.Join(ConfigDir(), "history.db"),
			StoreContent: true,
		},
		Watch: WatchConfig{
			Schedule: "@every 1m",
			Timeout:  "2m",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func ConfigDir() string {
	return filepath.Join(getExecutableDir(), ".questgen")
}

func ConfigPath() string {
	return filepath.Join(getExecutableDir(), ".questgen.yaml")
}

// Load reads the config next to the executable. A missing file yields the
// defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath reads the config at path, then applies QUESTGEN_* variables.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if c.OutputDir == "" {
		c.OutputDir = "quests"
	}
	c.FileExt = strings.TrimSpace(c.FileExt)
	if c.FileExt == "" {
		c.FileExt = ".yml"
	}
	c.Placeholders = c.Placeholders.WithDefaults()
}

func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
