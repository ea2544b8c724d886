// Package install copies an elf suite into a bin directory so that elf and
// every discovered command can be run from anywhere.
package install

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/atinylittleshell/elf/internal/registry"
)

// MainCommandName is the file name the root program is installed under.
const MainCommandName = "elf"

// ErrNoExecutable is returned when the root program to install is missing.
var ErrNoExecutable = errors.New("main 'elf' command not found")

// Options configures an installation.
type Options struct {
	// Executable is the root program to copy, normally os.Executable().
	Executable string
	// BinDir receives the copies. Created when missing.
	BinDir string
	// Prefix is prepended to each command name, e.g. "elf-".
	Prefix string
	// Registry lists the commands whose artifacts are copied.
	Registry *registry.Registry
	// Out receives progress lines. Defaults to os.Stdout.
	Out io.Writer
	// Logger is optional.
	Logger *zap.Logger
}

// Installed records one copied file.
type Installed struct {
	Source string
	Target string
}

// Install copies the root program and every command artifact into BinDir
// and marks the copies executable. It stops at the first failure.
func Install(opts Options) ([]Installed, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	fmt.Fprintf(out, "Installing ELF suite to %s...\n", opts.BinDir)

	if err := os.MkdirAll(opts.BinDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating bin directory %s: %w", opts.BinDir, err)
	}

	if info, err := os.Stat(opts.Executable); err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNoExecutable, opts.Executable)
	}

	var installed []Installed

	mainTarget := filepath.Join(opts.BinDir, MainCommandName)
	if err := copyExecutable(opts.Executable, mainTarget); err != nil {
		return installed, err
	}
	installed = append(installed, Installed{Source: opts.Executable, Target: mainTarget})
	fmt.Fprintln(out, "Installed main 'elf' command.")

	if opts.Registry != nil {
		for _, entry := range opts.Registry.Entries() {
			targetName := opts.Prefix + entry.Name
			target := filepath.Join(opts.BinDir, targetName)
			if err := copyExecutable(entry.Path, target); err != nil {
				return installed, err
			}
			logger.Debug("installed command", zap.String("command", entry.Name), zap.String("target", target))
			installed = append(installed, Installed{Source: entry.Path, Target: target})
			fmt.Fprintf(out, "Installed subcommand: %s\n", targetName)
		}
	}

	fmt.Fprintln(out, "ELF suite installation complete!")
	fmt.Fprintf(out, "You can now run 'elf' or '%s<subcommand>' from any terminal.\n", opts.Prefix)
	return installed, nil
}

// copyExecutable copies src to dst through a temporary file in the target
// directory, so a running copy of dst is never truncated in place.
func copyExecutable(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", src, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("error creating temporary file for %s: %w", dst, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return fmt.Errorf("error copying %s to %s: %w", src, dst, err)
	}
	if err := tmp.Chmod(0755); err != nil {
		tmp.Close()
		return fmt.Errorf("error marking %s executable: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing %s: %w", dst, err)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("error moving %s into place: %w", dst, err)
	}
	return nil
}
