package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader handles loading of the elf configuration file.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
	}
}

// LoadFromFile loads configuration from a YAML file and then applies ELF_*
// environment overrides. If the file doesn't exist, defaults are used.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		l.logger.Debug("config file not found, using defaults", zap.String("path", path))
	} else if err := l.merge(cfg, content); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromString parses YAML configuration on top of the defaults.
// Environment overrides are not applied.
func (l *Loader) LoadFromString(source string) (*Config, error) {
	cfg := DefaultConfig()
	if err := l.merge(cfg, []byte(source)); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// merge decodes YAML into cfg. Keys that are absent keep their current value;
// the interpreter table is merged rather than replaced.
func (l *Loader) merge(cfg *Config, content []byte) error {
	var fileCfg Config
	if err := yaml.Unmarshal(content, &fileCfg); err != nil {
		return err
	}

	if fileCfg.Root != "" {
		cfg.Root = fileCfg.Root
	}
	if fileCfg.Prefix != "" {
		cfg.Prefix = fileCfg.Prefix
	}
	if fileCfg.Marker != "" {
		cfg.Marker = fileCfg.Marker
	}
	if fileCfg.Prompt != "" {
		cfg.Prompt = fileCfg.Prompt
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.BinDir != "" {
		cfg.BinDir = fileCfg.BinDir
	}
	for ext, interp := range fileCfg.Interpreters {
		if cfg.Interpreters == nil {
			cfg.Interpreters = make(map[string]string)
		}
		cfg.Interpreters[ext] = interp
	}

	l.logger.Debug("loaded config", zap.Any("config", cfg))
	return nil
}

// ApplyEnv overrides cfg with any ELF_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	interps := cfg.Interpreters
	cfg.Interpreters = nil

	if err := env.Parse(cfg); err != nil {
		cfg.Interpreters = interps
		return fmt.Errorf("parse env: %w", err)
	}

	// ELF_INTERPRETERS adds to the table instead of replacing it
	for ext, interp := range cfg.Interpreters {
		if interps == nil {
			interps = make(map[string]string)
		}
		interps[ext] = interp
	}
	cfg.Interpreters = interps
	return nil
}
