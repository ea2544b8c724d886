// Package registry discovers the commands of an elf suite.
//
// A suite root holds one subdirectory per command. The subdirectory name, with
// the suite prefix stripped, is the command name; the artifact inside it is a
// file named after the marker ("impl", "impl.py", "impl.so", ...). Each
// artifact is classified once, at discovery time, so dispatch never has to
// inspect the filesystem again.
package registry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ArtifactKind is the closed set of artifact types elf knows how to launch.
type ArtifactKind int

const (
	// KindScript is run through a language runtime.
	KindScript ArtifactKind = iota
	// KindCompiledBinary is a compiled object (.o) launched directly.
	KindCompiledBinary
	// KindSharedObject is a shared library (.so) launched directly.
	KindSharedObject
	// KindOtherExecutable is any other file with an execute bit set.
	KindOtherExecutable
)

// String returns the string representation of an ArtifactKind.
func (k ArtifactKind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindCompiledBinary:
		return "binary"
	case KindSharedObject:
		return "shared-object"
	case KindOtherExecutable:
		return "executable"
	default:
		return "unknown"
	}
}

// CommandEntry is a discovered command.
type CommandEntry struct {
	Name string
	Path string
	Kind ArtifactKind
}

// Ext returns the artifact's file extension, including the dot.
func (e CommandEntry) Ext() string {
	return filepath.Ext(e.Path)
}

// Options controls discovery.
type Options struct {
	// Root is the suite directory to scan.
	Root string
	// Prefix is stripped from subdirectory names when present.
	Prefix string
	// Marker is the artifact base name.
	Marker string
	// ScriptExtensions lists extensions (with the dot) classified as scripts.
	ScriptExtensions []string
	// Logger is optional.
	Logger *zap.Logger
}

// Registry maps command names to their artifacts. It is immutable once built.
type Registry struct {
	commands map[string]CommandEntry
}

// osReadDir is a variable that can be overridden for testing.
var osReadDir = os.ReadDir

// New builds a registry from already-classified entries. Later duplicates of a
// name are ignored.
func New(entries ...CommandEntry) *Registry {
	r := &Registry{commands: make(map[string]CommandEntry, len(entries))}
	for _, e := range entries {
		if _, exists := r.commands[e.Name]; !exists {
			r.commands[e.Name] = e
		}
	}
	return r
}

// Discover scans opts.Root and returns the commands found there. It never
// fails: unreadable directories and unsupported files are skipped, and an
// empty registry is a valid result.
func Discover(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Registry{commands: make(map[string]CommandEntry)}

	// os.ReadDir sorts by file name, which makes every tie-break below
	// lexicographic
	dirs, err := osReadDir(opts.Root)
	if err != nil {
		logger.Debug("cannot read suite root", zap.String("root", opts.Root), zap.Error(err))
		return r
	}

	for _, dir := range dirs {
		if !isDir(opts.Root, dir) {
			continue
		}

		name := CommandName(dir.Name(), opts.Prefix)
		if name == "" {
			continue
		}
		if existing, ok := r.commands[name]; ok {
			logger.Debug("duplicate command name, keeping first",
				zap.String("name", name),
				zap.String("kept", existing.Path),
				zap.String("ignored", dir.Name()))
			continue
		}

		entry, ok := findArtifact(filepath.Join(opts.Root, dir.Name()), name, opts, logger)
		if !ok {
			continue
		}

		logger.Debug("discovered command",
			zap.String("name", entry.Name),
			zap.String("path", entry.Path),
			zap.Stringer("kind", entry.Kind))
		r.commands[name] = entry
	}

	return r
}

// CommandName derives a command name from a subdirectory name.
func CommandName(dirName, prefix string) string {
	if prefix == "" {
		return dirName
	}
	return strings.TrimPrefix(dirName, prefix)
}

// isDir reports whether entry is a directory, following symlinks.
func isDir(root string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(root, entry.Name()))
	return err == nil && info.IsDir()
}

// findArtifact returns the first qualifying artifact in dir.
func findArtifact(dir, name string, opts Options, logger *zap.Logger) (CommandEntry, bool) {
	files, err := osReadDir(dir)
	if err != nil {
		logger.Debug("skipping unreadable command directory", zap.String("dir", dir), zap.Error(err))
		return CommandEntry{}, false
	}

	for _, file := range files {
		if !isArtifactName(file.Name(), opts.Marker) {
			continue
		}

		path := filepath.Join(dir, file.Name())
		info, err := os.Stat(path)
		if err != nil {
			logger.Debug("skipping unreadable artifact", zap.String("path", path), zap.Error(err))
			continue
		}
		if info.IsDir() {
			continue
		}

		kind, ok := Classify(path, info.Mode(), opts.ScriptExtensions)
		if !ok {
			logger.Debug("skipping unsupported artifact", zap.String("path", path))
			continue
		}

		return CommandEntry{Name: name, Path: path, Kind: kind}, true
	}

	return CommandEntry{}, false
}

// isArtifactName reports whether a file name is "<marker>" or "<marker>.<ext>".
func isArtifactName(fileName, marker string) bool {
	if marker == "" {
		return false
	}
	if fileName == marker {
		return true
	}
	rest, ok := strings.CutPrefix(fileName, marker+".")
	return ok && rest != ""
}

// Classify decides how an artifact is launched. Script extensions win over
// object suffixes, which win over the execute bit.
func Classify(path string, mode os.FileMode, scriptExts []string) (ArtifactKind, bool) {
	ext := filepath.Ext(path)

	if ext != "" && lo.Contains(scriptExts, ext) {
		return KindScript, true
	}

	switch ext {
	case ".o":
		return KindCompiledBinary, true
	case ".so":
		return KindSharedObject, true
	}

	// On Unix-like systems, check if any execute bit is set
	if mode.IsRegular() && mode&0111 != 0 {
		return KindOtherExecutable, true
	}

	return 0, false
}

// Resolve looks up a command by name.
func (r *Registry) Resolve(name string) (CommandEntry, bool) {
	e, ok := r.commands[name]
	return e, ok
}

// Names returns all command names in lexicographic order.
func (r *Registry) Names() []string {
	names := lo.Keys(r.commands)
	sort.Strings(names)
	return names
}

// Entries returns all commands ordered by name.
func (r *Registry) Entries() []CommandEntry {
	return lo.Map(r.Names(), func(name string, _ int) CommandEntry {
		return r.commands[name]
	})
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.commands)
}

// Suggest returns registered names that fuzzily match name, best first.
// It is used for "did you mean" feedback only.
func (r *Registry) Suggest(name string) []string {
	if name == "" {
		return nil
	}
	matches := fuzzy.Find(name, r.Names())
	return lo.Map(matches, func(m fuzzy.Match, _ int) string {
		return m.Str
	})
}
