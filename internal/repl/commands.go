package repl

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/atinylittleshell/elf/internal/registry"
	"github.com/atinylittleshell/elf/internal/repl/render"
	"github.com/atinylittleshell/elf/internal/styles"
)

// ErrExit is returned when the user requests to exit the REPL.
var ErrExit = errors.New("exit requested")

const (
	builtinHelp         = "help"
	builtinListCommands = "list-commands"
	builtinExit         = "exit"
)

type builtinCommand struct {
	name        string
	description string
}

// builtins in the order help lists them.
var builtins = []builtinCommand{
	{builtinListCommands, "List all available ELF commands"},
	{builtinHelp, "Show this help menu"},
	{builtinExit, "Exit the ELF terminal"},
}

func isBuiltin(name string) bool {
	return lo.ContainsBy(builtins, func(b builtinCommand) bool {
		return b.name == name
	})
}

// handleBuiltinCommand handles built-in REPL commands.
// Returns true if the command was handled, and ErrExit if the REPL should exit.
func (r *REPL) handleBuiltinCommand(command string) (bool, error) {
	switch command {
	case builtinExit:
		return true, ErrExit

	case builtinHelp:
		r.printHelp()
		return true, nil

	case builtinListCommands:
		r.listCommands()
		return true, nil

	default:
		return false, nil
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.stdout, styles.HEADER("Core commands:"))
	for _, b := range builtins {
		fmt.Fprintf(r.stdout, "  %-14s - %s\n", b.name, b.description)
	}
}

// listCommands prints every discovered command with its kind and size.
func (r *REPL) listCommands() {
	entries := r.registry.Entries()
	if len(entries) == 0 {
		fmt.Fprintf(r.stdout, "No commands found in %s\n", r.suiteRoot())
		return
	}

	width := lo.Max(lo.Map(entries, func(e registry.CommandEntry, _ int) int {
		return len(e.Name)
	}))

	fmt.Fprintln(r.stdout, styles.HEADER("Available commands:"))
	for _, e := range entries {
		fmt.Fprintf(r.stdout, "  %-*s  %-13s %s\n", width, e.Name, e.Kind, render.DimStyle.Render(artifactSize(e.Path)))
	}
}

func artifactSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "?"
	}
	return humanize.Bytes(uint64(info.Size()))
}

// showWelcomeScreen displays the logo and what was discovered.
func (r *REPL) showWelcomeScreen() {
	info := render.WelcomeInfo{
		Version:  r.buildVersion,
		Root:     r.suiteRoot(),
		Commands: r.registry.Len(),
	}
	render.RenderWelcome(r.stdout, info, terminalWidth())
}

// trimLine drops surrounding whitespace.
func trimLine(line string) string {
	return strings.TrimSpace(line)
}

// joinNames joins at most limit names for a one-line hint.
func joinNames(names []string, limit int) string {
	if len(names) > limit {
		names = names[:limit]
	}
	return strings.Join(names, ", ")
}
