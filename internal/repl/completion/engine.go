// Package completion provides tab completion of command names for the elf
// shell.
package completion

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// NameSource supplies the command names completion draws from.
// *registry.Registry implements it.
type NameSource interface {
	Names() []string
}

// NameSourceFunc adapts a plain function to NameSource.
type NameSourceFunc func() []string

// Names implements NameSource.
func (f NameSourceFunc) Names() []string {
	return f()
}

// Engine is the completion state machine. It is Idle until a request
// produces at least one candidate, then Cycling: every further request with
// the same prefix returns the next candidate, wrapping around forever.
// A request with a different prefix, or one flagged as new, starts over.
//
// A cycle works on the candidate snapshot taken when it started, so changes
// to the name source only show up in the next cycle.
type Engine struct {
	source NameSource

	active     bool
	prefix     string
	candidates []string
	cursor     int
}

// NewEngine creates an idle Engine over source.
func NewEngine(source NameSource) *Engine {
	return &Engine{source: source}
}

// Complete returns the next candidate for prefix. The second return value is
// false when nothing matches, in which case the engine stays Idle.
func (e *Engine) Complete(prefix string, isNewRequest bool) (string, bool) {
	if isNewRequest || !e.active || prefix != e.prefix {
		e.start(prefix)
		if !e.active {
			return "", false
		}
	}

	candidate := e.candidates[e.cursor%len(e.candidates)]
	e.cursor++
	return candidate, true
}

// start filters the name source into a fresh cycle.
func (e *Engine) start(prefix string) {
	e.Reset()

	if e.source == nil {
		return
	}

	candidates := lo.Filter(e.source.Names(), func(name string, _ int) bool {
		return strings.HasPrefix(name, prefix)
	})
	if len(candidates) == 0 {
		return
	}
	candidates = lo.Uniq(candidates)
	sort.Strings(candidates)

	e.active = true
	e.prefix = prefix
	e.candidates = candidates
}

// Reset returns the engine to Idle.
func (e *Engine) Reset() {
	e.active = false
	e.prefix = ""
	e.candidates = nil
	e.cursor = 0
}

// Active reports whether a cycle is in progress.
func (e *Engine) Active() bool {
	return e.active
}

// Prefix returns the prefix that started the current cycle.
func (e *Engine) Prefix() string {
	return e.prefix
}

// Candidates returns a copy of the current cycle's candidates.
func (e *Engine) Candidates() []string {
	return append([]string(nil), e.candidates...)
}

// Cursor returns how many candidates the current cycle has handed out.
func (e *Engine) Cursor() int {
	return e.cursor
}

// Selected returns the index of the candidate returned last, or -1.
func (e *Engine) Selected() int {
	if !e.active || e.cursor == 0 {
		return -1
	}
	return (e.cursor - 1) % len(e.candidates)
}
