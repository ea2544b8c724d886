// Package input provides the line editor of the elf shell: a Bubble Tea
// component that handles text input, cursor movement, history navigation and
// Tab cycling through command names.
package input

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// ResultType indicates the type of result from the input component.
type ResultType int

const (
	// ResultNone indicates no result yet (still editing).
	ResultNone ResultType = iota
	// ResultSubmit indicates the user submitted the input (Enter).
	ResultSubmit
	// ResultInterrupt indicates the user interrupted (Ctrl+C).
	ResultInterrupt
	// ResultEOF indicates end of input (Ctrl+D on empty line).
	ResultEOF
)

// Result contains the outcome of an input session.
type Result struct {
	// Type indicates what action caused the input to complete.
	Type ResultType
	// Value is the input text (empty for interrupt/EOF).
	Value string
}

// Model is the Bubble Tea model for the line editor.
type Model struct {
	buffer  *Buffer
	keymap  *KeyMap
	focused bool

	prompt string

	// History navigation
	historyValues       []string
	historyIndex        int // 0 = current input, 1+ = history entries
	savedCurrentInput   string
	hasNavigatedHistory bool

	completion *CompletionState
	completer  Completer

	renderer *Renderer
	width    int

	result Result

	logger *zap.Logger
}

// Config holds configuration for creating a new Model.
type Config struct {
	// Prompt is the prompt string to display.
	Prompt string

	// HistoryValues is the list of previous commands for history navigation.
	// Index 0 is the most recent.
	HistoryValues []string

	// Completer drives Tab completion of the command word.
	Completer Completer

	// Known reports whether a command word resolves, for highlighting.
	Known func(name string) bool

	// KeyMap provides key bindings. If nil, DefaultKeyMap is used.
	KeyMap *KeyMap

	// RenderConfig provides styling. If nil, DefaultRenderConfig is used.
	RenderConfig *RenderConfig

	// Width is the initial terminal width.
	Width int

	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// New creates a new input Model with the given configuration.
func New(cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	keymap := cfg.KeyMap
	if keymap == nil {
		keymap = DefaultKeyMap()
	}

	renderConfig := DefaultRenderConfig()
	if cfg.RenderConfig != nil {
		renderConfig = *cfg.RenderConfig
	}

	width := cfg.Width
	if width <= 0 {
		width = 80
	}

	renderer := NewRenderer(renderConfig, NewHighlighter(cfg.Known))
	renderer.SetWidth(width)

	return Model{
		buffer:        NewBuffer(),
		keymap:        keymap,
		focused:       true,
		prompt:        cfg.Prompt,
		historyValues: cfg.HistoryValues,
		completion:    NewCompletionState(),
		completer:     cfg.Completer,
		renderer:      renderer,
		width:         width,
		result:        Result{Type: ResultNone},
		logger:        logger,
	}
}

// Read runs one editing session on a Bubble Tea program and returns how it
// ended.
func Read(cfg Config, opts ...tea.ProgramOption) (Result, error) {
	p := tea.NewProgram(New(cfg), opts...)
	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("error reading input: %w", err)
	}

	m, ok := final.(Model)
	if !ok || m.result.Type == ResultNone {
		return Result{Type: ResultEOF}, nil
	}
	return m.result, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. It handles all input events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.renderer.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case pasteMsg:
		return m.handlePaste(string(msg))
	}

	return m, nil
}

// View implements tea.Model. It renders the input component.
func (m Model) View() string {
	if m.result.Type != ResultNone {
		return m.renderer.RenderFinalView(m.prompt, m.buffer.Text()) + "\n"
	}

	var candidates []string
	selected := -1
	if m.completion.IsActive() && m.completer != nil {
		candidates = m.completer.Candidates()
		selected = m.completer.Selected()
	}
	return m.renderer.RenderFullView(m.prompt, m.buffer, m.focused, candidates, selected)
}

// Result returns the current result. Check Type != ResultNone to see if complete.
func (m Model) Result() Result {
	return m.result
}

// Value returns the current input text.
func (m Model) Value() string {
	return m.buffer.Text()
}

// SetValue sets the input text and moves cursor to end.
func (m *Model) SetValue(text string) {
	m.buffer.SetText(text)
	m.historyIndex = 0
	m.hasNavigatedHistory = false
}

// Focus sets the focus state on the model.
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes focus from the model.
func (m *Model) Blur() {
	m.focused = false
}

// Buffer returns the underlying buffer (for testing).
func (m Model) Buffer() *Buffer {
	return m.buffer
}

// Completion returns the completion state (for testing).
func (m Model) Completion() *CompletionState {
	return m.completion
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keymap.Lookup(msg)

	if m.completion.IsActive() {
		switch action {
		case ActionComplete:
			return m.handleComplete()
		case ActionCancel:
			return m.handleCancelCompletion()
		}
		// Any other key ends the cycle; the candidate already in the
		// buffer stays.
		m.resetCompletion()
	}

	switch action {
	case ActionSubmit:
		return m.handleSubmit()

	case ActionInterrupt:
		return m.handleInterrupt()

	case ActionDeleteCharacterForward:
		// Ctrl+D on empty input triggers EOF
		if m.buffer.Len() == 0 {
			return m.handleEOF()
		}
		m.buffer.DeleteCharForward()
		return m.onTextChanged()

	case ActionClearScreen:
		return m, tea.ClearScreen

	case ActionPaste:
		return m, Paste

	case ActionComplete:
		return m.handleComplete()

	case ActionCancel:
		return m, nil

	case ActionCharacterForward:
		m.buffer.SetPos(m.buffer.Pos() + 1)
	case ActionCharacterBackward:
		m.buffer.SetPos(m.buffer.Pos() - 1)
	case ActionWordForward:
		m.buffer.WordForward()
	case ActionWordBackward:
		m.buffer.WordBackward()
	case ActionLineStart:
		m.buffer.CursorStart()
	case ActionLineEnd:
		m.buffer.CursorEnd()

	case ActionDeleteCharacterBackward:
		m.buffer.DeleteCharBackward()
		return m.onTextChanged()
	case ActionDeleteWordBackward:
		m.buffer.DeleteWordBackward()
		return m.onTextChanged()
	case ActionDeleteBeforeCursor:
		m.buffer.DeleteBeforeCursor()
		return m.onTextChanged()
	case ActionDeleteAfterCursor:
		m.buffer.DeleteAfterCursor()
		return m.onTextChanged()

	case ActionCursorUp:
		return m.handleHistoryPrevious()
	case ActionCursorDown:
		return m.handleHistoryNext()

	default:
		if len(msg.Runes) > 0 {
			return m.handleInsertRunes(msg.Runes)
		}
	}

	return m, nil
}

// handleSubmit handles the Enter key.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	m.result = Result{
		Type:  ResultSubmit,
		Value: m.buffer.Text(),
	}
	return m, tea.Quit
}

// handleInterrupt handles Ctrl+C.
func (m Model) handleInterrupt() (tea.Model, tea.Cmd) {
	m.result = Result{Type: ResultInterrupt}
	return m, tea.Quit
}

// handleEOF handles Ctrl+D on empty input.
func (m Model) handleEOF() (tea.Model, tea.Cmd) {
	m.result = Result{Type: ResultEOF}
	return m, tea.Quit
}

// handleInsertRunes inserts characters at the cursor position.
func (m Model) handleInsertRunes(runes []rune) (tea.Model, tea.Cmd) {
	m.buffer.InsertRunes(sanitizeRunes(runes))
	return m.onTextChanged()
}

// handlePaste handles pasted text.
func (m Model) handlePaste(text string) (tea.Model, tea.Cmd) {
	m.resetCompletion()
	m.buffer.InsertRunes(sanitizeRunes([]rune(text)))
	return m.onTextChanged()
}

// onTextChanged detaches the line from history navigation after an edit.
func (m Model) onTextChanged() (tea.Model, tea.Cmd) {
	m.historyIndex = 0
	m.hasNavigatedHistory = false
	return m, nil
}

// handleHistoryPrevious navigates to the previous history entry (older).
func (m Model) handleHistoryPrevious() (tea.Model, tea.Cmd) {
	if len(m.historyValues) == 0 {
		return m, nil
	}

	// Save current input if this is the first navigation
	if !m.hasNavigatedHistory {
		m.savedCurrentInput = m.buffer.Text()
		m.hasNavigatedHistory = true
	}

	if m.historyIndex < len(m.historyValues) {
		m.historyIndex++
		m.buffer.SetText(m.historyValues[m.historyIndex-1])
	}

	return m, nil
}

// handleHistoryNext navigates to the next history entry (newer).
func (m Model) handleHistoryNext() (tea.Model, tea.Cmd) {
	if m.historyIndex <= 0 {
		return m, nil
	}

	m.historyIndex--
	if m.historyIndex == 0 {
		m.buffer.SetText(m.savedCurrentInput)
	} else {
		m.buffer.SetText(m.historyValues[m.historyIndex-1])
	}

	return m, nil
}

// handleComplete handles Tab. The first press completes the command word
// under the cursor; each further press swaps in the next candidate.
func (m Model) handleComplete() (tea.Model, tea.Cmd) {
	if m.completer == nil {
		return m, nil
	}

	if m.completion.IsActive() {
		candidate, ok := m.completer.Complete(m.completion.Prefix(), false)
		if !ok {
			m.resetCompletion()
			return m, nil
		}
		m.applyCompletion(candidate)
		return m, nil
	}

	text := m.buffer.Text()
	pos := m.buffer.Pos()
	start, end := GetWordBoundary(text, pos)
	if !IsCommandPosition(text, start) {
		return m, nil
	}

	prefix := string([]rune(text)[start:pos])
	candidate, ok := m.completer.Complete(prefix, true)
	if !ok {
		m.logger.Debug("no completion candidates", zap.String("prefix", prefix))
		return m, nil
	}

	m.completion.Activate(prefix, start, end, text, pos)
	m.applyCompletion(candidate)
	return m, nil
}

// handleCancelCompletion restores the line as it was before the first Tab.
func (m Model) handleCancelCompletion() (tea.Model, tea.Cmd) {
	m.buffer.SetText(m.completion.OriginalText())
	m.buffer.SetPos(m.completion.OriginalPos())
	m.resetCompletion()
	return m, nil
}

// applyCompletion replaces the tracked region with candidate.
func (m *Model) applyCompletion(candidate string) {
	start := m.completion.StartPos()
	m.buffer.Replace(start, m.completion.EndPos(), candidate)
	m.completion.SetEndPos(m.buffer.Pos())
}

func (m *Model) resetCompletion() {
	m.completion.Reset()
	if m.completer != nil {
		m.completer.Reset()
	}
}

// pasteMsg is sent when paste content is available.
type pasteMsg string

// Paste returns a command that reads from the clipboard.
func Paste() tea.Msg {
	str, err := clipboard.ReadAll()
	if err != nil {
		return nil
	}
	return pasteMsg(str)
}

// sanitizeRunes cleans up input runes by replacing tabs and newlines with spaces.
func sanitizeRunes(runes []rune) []rune {
	result := make([]rune, len(runes))
	for i, r := range runes {
		switch r {
		case '\t', '\n', '\r':
			result[i] = ' '
		default:
			result[i] = r
		}
	}
	return result
}
