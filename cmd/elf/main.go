// Command elf discovers the commands of an elf suite and runs them, either
// once from the command line or from an interactive shell with tab
// completion.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/atinylittleshell/elf/internal/config"
	"github.com/atinylittleshell/elf/internal/core"
	"github.com/atinylittleshell/elf/internal/dispatch"
	"github.com/atinylittleshell/elf/internal/install"
	"github.com/atinylittleshell/elf/internal/registry"
	"github.com/atinylittleshell/elf/internal/repl"
	"github.com/atinylittleshell/elf/internal/styles"
)

var BUILD_VERSION = "dev"

// ErrCommandRequired is returned when elf is started without a command and
// there is no terminal to run the shell on.
var ErrCommandRequired = errors.New("a command is required when stdin is not a terminal")

// app carries what one run of elf needs from its environment.
type app struct {
	paths      *core.Paths
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func() bool
	executable func() (string, error)

	// logger overrides the file logger, for tests.
	logger *zap.Logger

	root     string
	prefix   string
	logLevel string
	version  bool
	install  bool
	binDir   string

	exitCode int
}

func main() {
	a := &app{
		paths:      core.Default(),
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		executable: os.Executable,
	}
	os.Exit(a.execute(os.Args[1:]))
}

// execute runs elf with args and returns the process exit code.
func (a *app) execute(args []string) int {
	rootCmd := a.newRootCmd()
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(a.stderr, styles.ERROR("elf: "+err.Error()))
		return 1
	}
	return a.exitCode
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elf [command] [args...]",
		Short: "Run the commands of an elf suite",
		Long: `elf discovers commands laid out as <root>/elf-<name>/impl[.<ext>] and runs them.

Run without arguments to start the interactive shell.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args)
		},
	}
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.Flags()
	// Everything after the command name belongs to the command.
	flags.SetInterspersed(false)
	flags.StringVar(&a.root, "root", "", "directory to discover commands in (default: working directory)")
	flags.StringVar(&a.prefix, "prefix", "", "directory name prefix stripped from command names (default \"elf-\")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&a.version, "version", false, "display build version")
	flags.BoolVar(&a.install, "install", false, "install elf and every discovered command into the bin directory")
	flags.StringVar(&a.binDir, "bin-dir", "", "bin directory used by --install (default /usr/local/bin)")

	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	if a.version {
		fmt.Fprintln(a.stdout, BUILD_VERSION)
		return nil
	}

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := a.initializeLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() // Flush any buffered log entries

	logger.Info("-------- new elf session --------", zap.Strings("args", args), zap.String("root", cfg.Root))

	reg := registry.Discover(registry.Options{
		Root:             cfg.Root,
		Prefix:           cfg.Prefix,
		Marker:           cfg.Marker,
		ScriptExtensions: cfg.ScriptExtensions(),
		Logger:           logger,
	})
	logger.Debug("discovered commands", zap.Strings("commands", reg.Names()))

	if a.install {
		return a.runInstall(cfg, reg, logger)
	}

	dispatcher := dispatch.New(reg, dispatch.Options{
		Interpreters: cfg.Interpreters,
		Stdin:        a.stdin,
		Stdout:       a.stdout,
		Stderr:       a.stderr,
		Logger:       logger,
	})

	ctx := context.Background()

	if len(args) == 0 {
		if !a.isTerminal() {
			return ErrCommandRequired
		}
		return a.runShell(ctx, cfg, reg, dispatcher, logger)
	}

	name := args[0]
	res := dispatcher.Run(ctx, name, args[1:])
	switch {
	case errors.Is(res.Err, dispatch.ErrCommandNotFound):
		fmt.Fprintln(a.stdout, styles.ERROR(fmt.Sprintf("Error: Command '%s' not found.", name)))
	case res.Err != nil:
		fmt.Fprintln(a.stdout, styles.ERROR(fmt.Sprintf("Error: running command '%s': %v", name, res.Err)))
	}
	a.exitCode = dispatch.ExitCode(res)
	logger.Debug("dispatch finished", zap.String("command", name), zap.Int("exitCode", a.exitCode))
	return nil
}

// loadConfig layers the config file, ELF_* variables and command-line flags.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.NewLoader(nil).LoadFromFile(a.paths.ConfigFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = a.root
	}
	if flags.Changed("prefix") {
		cfg.Prefix = a.prefix
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("bin-dir") {
		cfg.BinDir = a.binDir
	}

	if cfg.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting working directory: %w", err)
		}
		cfg.Root = wd
	}
	return cfg, nil
}

// initializeLogger logs to the elf log file only; the terminal belongs to
// the shell and to the commands it runs.
func (a *app) initializeLogger(cfg *config.Config) (*zap.Logger, error) {
	if a.logger != nil {
		return a.logger, nil
	}

	logLevel, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	if err := a.paths.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		a.paths.LogFile,
	}

	// Use `tail -f ~/.elf/elf.log` to monitor logs in real-time
	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func (a *app) runShell(ctx context.Context, cfg *config.Config, reg *registry.Registry, d repl.Dispatcher, logger *zap.Logger) error {
	shell, err := repl.NewREPL(repl.Options{
		Registry:     reg,
		Dispatcher:   d,
		Config:       cfg,
		HistoryPath:  a.paths.HistoryFile,
		Stdout:       a.stdout,
		BuildVersion: BUILD_VERSION,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	defer shell.Close()

	return shell.Run(ctx)
}

func (a *app) runInstall(cfg *config.Config, reg *registry.Registry, logger *zap.Logger) error {
	executable, err := a.executable()
	if err != nil {
		return fmt.Errorf("error locating elf executable: %w", err)
	}

	_, err = install.Install(install.Options{
		Executable: executable,
		BinDir:     cfg.BinDir,
		Prefix:     cfg.Prefix,
		Registry:   reg,
		Out:        a.stdout,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("installation failed", zap.Error(err))
		return err
	}
	return nil
}
