package core

import (
	"os"
	"path/filepath"
)

type Paths struct {
	HomeDir     string
	DataDir     string
	LogFile     string
	HistoryFile string
	ConfigFile  string
}

var defaultPaths *Paths

// NewPaths builds the elf data layout rooted at the given home directory.
// The data directory is not created; call EnsureDataDir for that.
func NewPaths(homeDir string) *Paths {
	dataDir := filepath.Join(homeDir, ".elf")
	return &Paths{
		HomeDir:     homeDir,
		DataDir:     dataDir,
		LogFile:     filepath.Join(dataDir, "elf.log"),
		HistoryFile: filepath.Join(dataDir, "history.db"),
		ConfigFile:  filepath.Join(dataDir, "config.yaml"),
	}
}

// EnsureDataDir creates the data directory if it does not exist yet.
func (p *Paths) EnsureDataDir() error {
	return os.MkdirAll(p.DataDir, 0755)
}

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		defaultPaths = NewPaths(homeDir)

		err = defaultPaths.EnsureDataDir()
		if err != nil {
			panic(err)
		}
	}
}

// Default returns the paths for the current user, creating ~/.elf on first use.
func Default() *Paths {
	ensureDefaultPaths()
	return defaultPaths
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

func HistoryFile() string {
	ensureDefaultPaths()
	return defaultPaths.HistoryFile
}

func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
