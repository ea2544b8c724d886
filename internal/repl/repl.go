// Package repl provides the interactive elf shell. It reads one line at a
// time with the input line editor, handles the built-in commands itself and
// hands everything else to the dispatcher.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"
	"mvdan.cc/sh/v3/shell"

	"github.com/atinylittleshell/elf/internal/config"
	"github.com/atinylittleshell/elf/internal/dispatch"
	"github.com/atinylittleshell/elf/internal/history"
	"github.com/atinylittleshell/elf/internal/registry"
	"github.com/atinylittleshell/elf/internal/repl/completion"
	"github.com/atinylittleshell/elf/internal/repl/input"
	"github.com/atinylittleshell/elf/internal/styles"
)

// historyLimit bounds how many past lines Up/Down can reach.
const historyLimit = 200

// Dispatcher runs a command by name. *dispatch.Dispatcher implements it.
type Dispatcher interface {
	Run(ctx context.Context, name string, args []string) dispatch.Result
}

// LineReader reads one line from the user.
type LineReader interface {
	ReadLine(cfg input.Config) (input.Result, error)
}

// LineReaderFunc adapts a function to LineReader.
type LineReaderFunc func(cfg input.Config) (input.Result, error)

// ReadLine implements LineReader.
func (f LineReaderFunc) ReadLine(cfg input.Config) (input.Result, error) {
	return f(cfg)
}

// Options holds configuration for creating a new REPL.
type Options struct {
	// Registry holds the discovered commands. Required.
	Registry *registry.Registry

	// Dispatcher runs non built-in commands. Required.
	Dispatcher Dispatcher

	// Config supplies the prompt and the suite root. Defaults apply when nil.
	Config *config.Config

	// HistoryPath is the history database. Empty disables history.
	HistoryPath string

	// Reader reads lines. Defaults to the Bubble Tea line editor.
	Reader LineReader

	// Stdout receives the shell's own output. Defaults to os.Stdout.
	Stdout io.Writer

	BuildVersion string

	Logger *zap.Logger
}

// REPL is the interactive elf shell.
type REPL struct {
	registry   *registry.Registry
	dispatcher Dispatcher
	config     *config.Config
	history    *history.HistoryManager
	engine     *completion.Engine
	reader     LineReader
	stdout     io.Writer
	logger     *zap.Logger

	buildVersion string
	lastExitCode int
}

// NewREPL creates a new REPL.
func NewREPL(opts Options) (*REPL, error) {
	if opts.Registry == nil {
		return nil, errors.New("repl: registry is required")
	}
	if opts.Dispatcher == nil {
		return nil, errors.New("repl: dispatcher is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	reader := opts.Reader
	if reader == nil {
		reader = LineReaderFunc(func(c input.Config) (input.Result, error) {
			return input.Read(c)
		})
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	var historyManager *history.HistoryManager
	if opts.HistoryPath != "" {
		var err error
		historyManager, err = history.NewHistoryManager(opts.HistoryPath)
		if err != nil {
			// The shell works without history.
			logger.Warn("failed to open history", zap.String("path", opts.HistoryPath), zap.Error(err))
		}
	}

	return &REPL{
		registry:     opts.Registry,
		dispatcher:   opts.Dispatcher,
		config:       cfg,
		history:      historyManager,
		engine:       completion.NewEngine(opts.Registry),
		reader:       reader,
		stdout:       stdout,
		logger:       logger,
		buildVersion: opts.BuildVersion,
	}, nil
}

// Run reads and executes lines until the user exits, interrupts or closes
// input. Command failures never end the loop.
func (r *REPL) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.showWelcomeScreen()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.engine.Reset()
		result, err := r.reader.ReadLine(r.inputConfig())
		if err != nil {
			return fmt.Errorf("error reading line: %w", err)
		}

		switch result.Type {
		case input.ResultInterrupt, input.ResultEOF:
			r.sayGoodbye()
			return nil
		case input.ResultSubmit:
		default:
			continue
		}

		err = r.processCommand(ctx, result.Value)
		if errors.Is(err, ErrExit) {
			r.sayGoodbye()
			return nil
		}
		if err != nil {
			r.logger.Error("error processing command", zap.String("line", result.Value), zap.Error(err))
			fmt.Fprintln(r.stdout, styles.ERROR("Error: "+err.Error()))
		}
	}
}

// processCommand handles one submitted line.
func (r *REPL) processCommand(ctx context.Context, line string) error {
	trimmed := trimLine(line)
	if trimmed == "" {
		return nil
	}

	if handled, err := r.handleBuiltinCommand(trimmed); handled {
		return err
	}

	fields, err := shell.Fields(trimmed, nil)
	if err != nil {
		fmt.Fprintln(r.stdout, styles.ERROR(fmt.Sprintf("Error: could not parse line: %v", err)))
		return nil
	}
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]

	var entry *history.HistoryEntry
	if r.history != nil {
		entry, err = r.history.StartCommand(trimmed, r.suiteRoot())
		if err != nil {
			r.logger.Warn("failed to record command in history", zap.Error(err))
		}
	}

	res := r.dispatcher.Run(ctx, name, args)
	r.lastExitCode = dispatch.ExitCode(res)
	r.reportResult(name, res)

	if entry != nil {
		if _, err := r.history.FinishCommand(entry, r.lastExitCode); err != nil {
			r.logger.Warn("failed to record exit code in history", zap.Error(err))
		}
	}
	return nil
}

// reportResult prints feedback for dispatches that did not run a child.
// A child that ran has already spoken for itself.
func (r *REPL) reportResult(name string, res dispatch.Result) {
	switch {
	case errors.Is(res.Err, dispatch.ErrCommandNotFound):
		fmt.Fprintln(r.stdout, styles.ERROR(fmt.Sprintf("Error: Command '%s' not found.", name)))
		if suggestions := r.registry.Suggest(name); len(suggestions) > 0 {
			fmt.Fprintf(r.stdout, "Did you mean: %s?\n", joinNames(suggestions, 3))
		}
	case res.Err != nil:
		fmt.Fprintln(r.stdout, styles.ERROR(fmt.Sprintf("Error: running command '%s': %v", name, res.Err)))
	default:
		r.logger.Debug("command finished", zap.String("command", name), zap.Int("exitCode", res.ExitCode))
	}
}

func (r *REPL) inputConfig() input.Config {
	return input.Config{
		Prompt:        r.config.Prompt,
		HistoryValues: r.getHistoryValues(),
		Completer:     r.engine,
		Known:         r.isKnownCommand,
		Width:         terminalWidth(),
		Logger:        r.logger,
	}
}

// getHistoryValues returns past lines, most recent first.
func (r *REPL) getHistoryValues() []string {
	if r.history == nil {
		return nil
	}
	values, err := r.history.RecentCommands(r.suiteRoot(), historyLimit)
	if err != nil {
		r.logger.Warn("failed to load history", zap.Error(err))
		return nil
	}
	return values
}

func (r *REPL) isKnownCommand(name string) bool {
	if isBuiltin(name) {
		return true
	}
	_, ok := r.registry.Resolve(name)
	return ok
}

// suiteRoot scopes history to the directory commands were discovered in.
func (r *REPL) suiteRoot() string {
	if r.config.Root != "" {
		return r.config.Root
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func (r *REPL) sayGoodbye() {
	fmt.Fprintln(r.stdout, "Goodbye!")
}

// Config returns the shell configuration.
func (r *REPL) Config() *config.Config {
	return r.config
}

// History returns the history manager, or nil when history is disabled.
func (r *REPL) History() *history.HistoryManager {
	return r.history
}

// LastExitCode returns the exit code of the most recent dispatch.
func (r *REPL) LastExitCode() int {
	return r.lastExitCode
}

// Close releases resources held by the REPL.
func (r *REPL) Close() error {
	if r.history != nil {
		return r.history.Close()
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
