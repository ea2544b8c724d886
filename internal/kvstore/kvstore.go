// Package kvstore is the flat key-value store behind the elf config command.
// Values live in a single indented JSON object on disk.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
)

// FileName is the store file inside the elf config directory.
const FileName = "config.json"

// Pair is one stored key and its value.
type Pair struct {
	Key   string
	Value string
}

// Store reads and writes the JSON file at path. Every call goes to disk.
type Store struct {
	path string
}

// New creates a Store backed by path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns <user config dir>/elf/config.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error locating user config directory: %w", err)
	}
	return filepath.Join(dir, "elf", FileName), nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load returns every stored pair. A missing file is an empty store.
func (s *Store) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", s.path, err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", s.path, err)
	}
	return values, nil
}

// Save replaces the stored pairs with values.
func (s *Store) Save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "    ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", s.path, err)
	}
	return nil
}

// Get returns the value for key and whether it is set.
func (s *Store) Get(key string) (string, bool, error) {
	values, err := s.Load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	values, err := s.Load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.Save(values)
}

// List returns every pair sorted by key.
func (s *Store) List() ([]Pair, error) {
	values, err := s.Load()
	if err != nil {
		return nil, err
	}

	keys := lo.Keys(values)
	sort.Strings(keys)
	return lo.Map(keys, func(k string, _ int) Pair {
		return Pair{Key: k, Value: values[k]}
	}), nil
}
