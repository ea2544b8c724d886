// Package dispatch resolves command names through the registry and runs the
// matching artifact as a child process. The child inherits the standard
// streams, and its exit status is handed back to the caller.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/atinylittleshell/elf/internal/registry"
	"go.uber.org/zap"
)

// SentinelExitCode is the process exit code used when no child could be run.
const SentinelExitCode = 1

var (
	// ErrCommandNotFound is returned when a name is not in the registry.
	ErrCommandNotFound = errors.New("command not found")
	// ErrLaunchFailed is returned when the child process could not be started.
	ErrLaunchFailed = errors.New("launch failed")
)

// Resolver looks up commands by name. *registry.Registry implements it.
type Resolver interface {
	Resolve(name string) (registry.CommandEntry, bool)
}

// Result is the outcome of a single dispatch.
type Result struct {
	// ExitCode is the child's exit code. Only meaningful when Started is true.
	ExitCode int
	// Started reports whether a child process was actually started.
	Started bool
	// Err is ErrCommandNotFound or wraps ErrLaunchFailed; nil once a child ran,
	// whatever its exit code.
	Err error
}

// ExitCode maps a result to the exit code of a non-interactive elf run.
func ExitCode(res Result) int {
	if res.Err != nil || !res.Started {
		return SentinelExitCode
	}
	return res.ExitCode
}

// Options configures a Dispatcher.
type Options struct {
	// Interpreters maps script extensions to the runtime that runs them.
	Interpreters map[string]string
	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Logger is optional.
	Logger *zap.Logger
}

// Dispatcher runs registered commands. It is not safe for concurrent use;
// the shell runs one command at a time.
type Dispatcher struct {
	resolver     Resolver
	interpreters map[string]string
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
	logger       *zap.Logger
}

// New creates a Dispatcher over the given resolver.
func New(resolver Resolver, opts Options) *Dispatcher {
	d := &Dispatcher{
		resolver:     resolver,
		interpreters: opts.Interpreters,
		stdin:        opts.Stdin,
		stdout:       opts.Stdout,
		stderr:       opts.Stderr,
		logger:       opts.Logger,
	}
	if d.stdin == nil {
		d.stdin = os.Stdin
	}
	if d.stdout == nil {
		d.stdout = os.Stdout
	}
	if d.stderr == nil {
		d.stderr = os.Stderr
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// Run resolves name and runs it with args, blocking until the child exits.
// A launch failure is reported once; there are no retries.
func (d *Dispatcher) Run(ctx context.Context, name string, args []string) Result {
	entry, ok := d.resolver.Resolve(name)
	if !ok {
		d.logger.Debug("command not found", zap.String("name", name))
		return Result{Err: fmt.Errorf("%w: %s", ErrCommandNotFound, name)}
	}

	program, argv, err := d.Command(entry, args)
	if err != nil {
		return Result{Err: err}
	}

	// A cancelled session never starts new children. Once started, a child is
	// left to finish on its own.
	if err := ctx.Err(); err != nil {
		return Result{Err: fmt.Errorf("%w: %s: %w", ErrLaunchFailed, name, err)}
	}

	cmd := exec.Command(program, argv...)
	cmd.Stdin = d.stdin
	cmd.Stdout = d.stdout
	cmd.Stderr = d.stderr

	// The terminal delivers Ctrl+C to the whole foreground process group.
	// The child decides what to do with it; elf keeps running so the shell
	// can show the next prompt.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	if err := cmd.Start(); err != nil {
		d.logger.Warn("failed to start command",
			zap.String("name", name),
			zap.String("program", program),
			zap.Error(err))
		return Result{Err: fmt.Errorf("%w: %s: %w", ErrLaunchFailed, name, err)}
	}

	d.logger.Debug("command started",
		zap.String("name", name),
		zap.String("program", program),
		zap.Strings("args", argv),
		zap.Int("pid", cmd.Process.Pid))

	waitErr := cmd.Wait()
	code := exitCode(cmd.ProcessState, waitErr)

	d.logger.Debug("command finished",
		zap.String("name", name),
		zap.Int("exitCode", code))

	return Result{ExitCode: code, Started: true}
}

// Command returns the program and argument vector used to launch entry.
// Scripts go through their interpreter with the artifact path first;
// everything else is executed directly.
func (d *Dispatcher) Command(entry registry.CommandEntry, args []string) (string, []string, error) {
	switch entry.Kind {
	case registry.KindScript:
		interp, ok := d.interpreters[entry.Ext()]
		if !ok || interp == "" {
			return "", nil, fmt.Errorf("%w: %s: no interpreter configured for %q", ErrLaunchFailed, entry.Name, entry.Ext())
		}
		argv := make([]string, 0, len(args)+1)
		argv = append(argv, entry.Path)
		argv = append(argv, args...)
		return interp, argv, nil

	case registry.KindCompiledBinary, registry.KindSharedObject, registry.KindOtherExecutable:
		return entry.Path, append([]string(nil), args...), nil

	default:
		return "", nil, fmt.Errorf("%w: %s: unsupported artifact kind %s", ErrLaunchFailed, entry.Name, entry.Kind)
	}
}

// exitCode extracts the exit status of a finished child. A child killed by a
// signal reports 128+signal, the way POSIX shells do.
func exitCode(state *os.ProcessState, waitErr error) int {
	if state == nil {
		if waitErr != nil {
			return SentinelExitCode
		}
		return 0
	}

	if status, ok := state.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}

	if code := state.ExitCode(); code >= 0 {
		return code
	}
	return SentinelExitCode
}
