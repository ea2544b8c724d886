// Package config provides configuration management for elf.
// Values come from built-in defaults, an optional YAML file in the elf data
// directory, and ELF_* environment variables, in that order of precedence.
package config

// Config holds everything the dispatcher, the registry and the shell need.
type Config struct {
	// Root is the directory scanned for command subdirectories.
	// Empty means the current working directory.
	Root string `yaml:"root" env:"ELF_ROOT"`

	// Prefix is stripped from subdirectory names to obtain command names.
	Prefix string `yaml:"prefix" env:"ELF_PREFIX"`

	// Marker is the base name every artifact file starts with.
	Marker string `yaml:"marker" env:"ELF_MARKER"`

	// Prompt is shown by the interactive shell.
	Prompt string `yaml:"prompt" env:"ELF_PROMPT"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"logLevel" env:"ELF_LOG_LEVEL"`

	// Interpreters maps a script extension (with the dot) to the runtime
	// used to run it, e.g. ".py" -> "python3".
	Interpreters map[string]string `yaml:"interpreters" env:"ELF_INTERPRETERS"`

	// BinDir is where the installer copies the suite.
	BinDir string `yaml:"binDir" env:"ELF_BIN_DIR"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Prefix:   "elf-",
		Marker:   "impl",
		Prompt:   "elf> ",
		LogLevel: "info",
		Interpreters: map[string]string{
			".py": "python3",
		},
		BinDir: "/usr/local/bin",
	}
}

// ScriptExtensions returns the extensions registered as interpreted scripts.
func (c *Config) ScriptExtensions() []string {
	exts := make([]string, 0, len(c.Interpreters))
	for ext := range c.Interpreters {
		exts = append(exts, ext)
	}
	return exts
}

// Interpreter returns the runtime configured for ext, if any.
func (c *Config) Interpreter(ext string) (string, bool) {
	if c.Interpreters == nil {
		return "", false
	}
	interp, ok := c.Interpreters[ext]
	return interp, ok && interp != ""
}
