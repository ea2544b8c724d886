package input

import (
	"strings"
	"testing"

	"github.com/atinylittleshell/elf/internal/repl/completion"
	tea "github.com/charmbracelet/bubbletea"
)

func press(m Model, keyType tea.KeyType) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: keyType})
	return updated.(Model)
}

func typeText(m Model, text string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func newCompletingModel(names ...string) Model {
	engine := completion.NewEngine(completion.NameSourceFunc(func() []string { return names }))
	return New(Config{Prompt: "elf> ", Completer: engine})
}

func TestNew(t *testing.T) {
	t.Run("creates model with defaults", func(t *testing.T) {
		m := New(Config{})

		if m.buffer == nil {
			t.Error("buffer should not be nil")
		}
		if m.keymap == nil {
			t.Error("keymap should not be nil")
		}
		if !m.focused {
			t.Error("model should be focused by default")
		}
		if m.result.Type != ResultNone {
			t.Error("result type should be ResultNone")
		}
		if m.width != 80 {
			t.Errorf("expected default width 80, got %d", m.width)
		}
	})

	t.Run("creates model with custom config", func(t *testing.T) {
		m := New(Config{
			Prompt:        "test> ",
			HistoryValues: []string{"cmd1", "cmd2"},
			Width:         120,
		})

		if m.prompt != "test> " {
			t.Errorf("expected prompt 'test> ', got '%s'", m.prompt)
		}
		if len(m.historyValues) != 2 {
			t.Errorf("expected 2 history values, got %d", len(m.historyValues))
		}
		if m.width != 120 {
			t.Errorf("expected width 120, got %d", m.width)
		}
	})
}

func TestModelValue(t *testing.T) {
	m := New(Config{})
	m.SetValue("hello")

	if m.Value() != "hello" {
		t.Errorf("expected 'hello', got '%s'", m.Value())
	}
	if m.Buffer().Pos() != 5 {
		t.Errorf("expected cursor at 5, got %d", m.Buffer().Pos())
	}
}

func TestModelFocus(t *testing.T) {
	m := New(Config{})
	m.Blur()

	m = typeText(m, "ignored")
	if m.Value() != "" {
		t.Errorf("blurred model should ignore input, got '%s'", m.Value())
	}

	m.Focus()
	m = typeText(m, "ok")
	if m.Value() != "ok" {
		t.Errorf("expected 'ok', got '%s'", m.Value())
	}
}

func TestCharacterInput(t *testing.T) {
	m := New(Config{})
	m = typeText(m, "seed")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = updated.(Model)

	if m.Value() != "seed " {
		t.Errorf("expected 'seed ', got '%s'", m.Value())
	}
}

func TestInsertSanitizesControlWhitespace(t *testing.T) {
	m := New(Config{})
	m = typeText(m, "a\tb\nc")

	if m.Value() != "a b c" {
		t.Errorf("expected 'a b c', got '%q'", m.Value())
	}
}

func TestSubmit(t *testing.T) {
	m := New(Config{})
	m = typeText(m, "config list")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.Result().Type != ResultSubmit {
		t.Errorf("expected ResultSubmit, got %v", m.Result().Type)
	}
	if m.Result().Value != "config list" {
		t.Errorf("expected 'config list', got '%s'", m.Result().Value)
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestInterrupt(t *testing.T) {
	m := New(Config{})
	m = typeText(m, "partial")
	m = press(m, tea.KeyCtrlC)

	if m.Result().Type != ResultInterrupt {
		t.Errorf("expected ResultInterrupt, got %v", m.Result().Type)
	}
	if m.Result().Value != "" {
		t.Errorf("interrupt should carry no value, got '%s'", m.Result().Value)
	}
}

func TestEOFOnEmptyInput(t *testing.T) {
	m := New(Config{})
	m = press(m, tea.KeyCtrlD)

	if m.Result().Type != ResultEOF {
		t.Errorf("expected ResultEOF, got %v", m.Result().Type)
	}
}

func TestEOFOnNonEmptyInput(t *testing.T) {
	m := New(Config{})
	m = typeText(m, "ab")
	m = press(m, tea.KeyHome)
	m = press(m, tea.KeyCtrlD)

	if m.Result().Type != ResultNone {
		t.Errorf("Ctrl+D with text should delete, got result %v", m.Result().Type)
	}
	if m.Value() != "b" {
		t.Errorf("expected 'b', got '%s'", m.Value())
	}
}

func TestBackspace(t *testing.T) {
	m := New(Config{})
	m = typeText(m, "abc")
	m = press(m, tea.KeyBackspace)

	if m.Value() != "ab" {
		t.Errorf("expected 'ab', got '%s'", m.Value())
	}
}

func TestCursorNavigation(t *testing.T) {
	m := New(Config{})
	m = typeText(m, "one two")

	m = press(m, tea.KeyLeft)
	if m.Buffer().Pos() != 6 {
		t.Errorf("expected cursor at 6, got %d", m.Buffer().Pos())
	}
	m = press(m, tea.KeyHome)
	if m.Buffer().Pos() != 0 {
		t.Errorf("expected cursor at 0, got %d", m.Buffer().Pos())
	}
	m = press(m, tea.KeyRight)
	if m.Buffer().Pos() != 1 {
		t.Errorf("expected cursor at 1, got %d", m.Buffer().Pos())
	}
	m = press(m, tea.KeyEnd)
	if m.Buffer().Pos() != 7 {
		t.Errorf("expected cursor at 7, got %d", m.Buffer().Pos())
	}
}

func TestDeleteKeys(t *testing.T) {
	m := New(Config{})
	m = typeText(m, "config set key")

	m = press(m, tea.KeyCtrlW)
	if m.Value() != "config set " {
		t.Errorf("expected 'config set ', got '%s'", m.Value())
	}

	m = press(m, tea.KeyCtrlU)
	if m.Value() != "" {
		t.Errorf("expected empty, got '%s'", m.Value())
	}

	m = typeText(m, "abc")
	m = press(m, tea.KeyHome)
	m = press(m, tea.KeyCtrlK)
	if m.Value() != "" {
		t.Errorf("expected empty, got '%s'", m.Value())
	}
}

func TestHistoryNavigation(t *testing.T) {
	m := New(Config{HistoryValues: []string{"newest", "older"}})

	m = press(m, tea.KeyUp)
	if m.Value() != "newest" {
		t.Errorf("expected 'newest', got '%s'", m.Value())
	}
	m = press(m, tea.KeyUp)
	if m.Value() != "older" {
		t.Errorf("expected 'older', got '%s'", m.Value())
	}
	m = press(m, tea.KeyUp)
	if m.Value() != "older" {
		t.Errorf("expected to stay at 'older', got '%s'", m.Value())
	}
	m = press(m, tea.KeyDown)
	if m.Value() != "newest" {
		t.Errorf("expected 'newest', got '%s'", m.Value())
	}
}

func TestHistoryNavigationSavesCurrentInput(t *testing.T) {
	m := New(Config{HistoryValues: []string{"seed"}})
	m = typeText(m, "draft")

	m = press(m, tea.KeyUp)
	m = press(m, tea.KeyDown)

	if m.Value() != "draft" {
		t.Errorf("expected 'draft' restored, got '%s'", m.Value())
	}
}

func TestCompletion_CyclesCandidates(t *testing.T) {
	m := newCompletingModel("list", "link", "load")
	m = typeText(m, "li")

	want := []string{"link", "list", "link"}
	for i, w := range want {
		m = press(m, tea.KeyTab)
		if m.Value() != w {
			t.Errorf("tab %d: expected '%s', got '%s'", i+1, w, m.Value())
		}
	}
	if !m.Completion().IsActive() {
		t.Error("completion should be active while cycling")
	}
}

func TestCompletion_EmptyLineCyclesEverything(t *testing.T) {
	m := newCompletingModel("seed", "config")

	m = press(m, tea.KeyTab)
	if m.Value() != "config" {
		t.Errorf("expected 'config', got '%s'", m.Value())
	}
	m = press(m, tea.KeyTab)
	if m.Value() != "seed" {
		t.Errorf("expected 'seed', got '%s'", m.Value())
	}
}

func TestCompletion_OtherKeyEndsCycle(t *testing.T) {
	m := newCompletingModel("list", "link")
	m = typeText(m, "li")
	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyTab)
	if m.Value() != "list" {
		t.Fatalf("expected 'list', got '%s'", m.Value())
	}

	// typing ends the cycle and keeps the inserted candidate
	m = press(m, tea.KeyBackspace)
	if m.Completion().IsActive() {
		t.Error("completion should be inactive after an edit")
	}
	if m.Value() != "lis" {
		t.Errorf("expected 'lis', got '%s'", m.Value())
	}

	// the next Tab starts a new cycle from the new prefix
	m = press(m, tea.KeyTab)
	if m.Value() != "list" {
		t.Errorf("expected 'list', got '%s'", m.Value())
	}
}

func TestCompletion_NoMatchLeavesLineAlone(t *testing.T) {
	m := newCompletingModel("list")
	m = typeText(m, "xz")
	m = press(m, tea.KeyTab)

	if m.Value() != "xz" {
		t.Errorf("expected 'xz', got '%s'", m.Value())
	}
	if m.Completion().IsActive() {
		t.Error("completion should stay inactive")
	}
}

func TestCompletion_OnlyCommandWord(t *testing.T) {
	m := newCompletingModel("list", "link")
	m = typeText(m, "config li")
	m = press(m, tea.KeyTab)

	if m.Value() != "config li" {
		t.Errorf("arguments are not completed, got '%s'", m.Value())
	}
}

func TestCompletion_KeepsArguments(t *testing.T) {
	m := newCompletingModel("config")
	m = typeText(m, "co set a b")
	m.Buffer().SetPos(2)

	m = press(m, tea.KeyTab)
	if m.Value() != "config set a b" {
		t.Errorf("expected 'config set a b', got '%s'", m.Value())
	}
	if m.Buffer().Pos() != 6 {
		t.Errorf("expected cursor after the command word, got %d", m.Buffer().Pos())
	}
}

func TestCompletion_EscapeRestoresLine(t *testing.T) {
	m := newCompletingModel("list", "link")
	m = typeText(m, "li")
	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyEsc)

	if m.Value() != "li" {
		t.Errorf("expected 'li', got '%s'", m.Value())
	}
	if m.Completion().IsActive() {
		t.Error("completion should be inactive after cancel")
	}
}

func TestCompletion_SubmitAcceptsCandidate(t *testing.T) {
	m := newCompletingModel("seed")
	m = typeText(m, "s")
	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyEnter)

	if m.Result().Type != ResultSubmit || m.Result().Value != "seed" {
		t.Errorf("expected submit of 'seed', got %+v", m.Result())
	}
}

func TestCompletion_NoCompleter(t *testing.T) {
	m := New(Config{})
	m = typeText(m, "li")
	m = press(m, tea.KeyTab)

	if m.Value() != "li" {
		t.Errorf("expected 'li', got '%s'", m.Value())
	}
}

func TestPasteMsg(t *testing.T) {
	m := New(Config{})
	updated, _ := m.Update(pasteMsg("config\tlist"))
	m = updated.(Model)

	if m.Value() != "config list" {
		t.Errorf("expected 'config list', got '%s'", m.Value())
	}
}

func TestWindowSize(t *testing.T) {
	m := New(Config{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)

	if m.renderer.Width() != 100 {
		t.Errorf("expected width 100, got %d", m.renderer.Width())
	}
}

func TestViewShowsPromptAndCandidates(t *testing.T) {
	m := newCompletingModel("list", "link")
	m = typeText(m, "li")
	m = press(m, tea.KeyTab)

	view := m.View()
	for _, want := range []string{"elf>", "link", "list"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q, got %q", want, view)
		}
	}
}

func TestViewAfterSubmit(t *testing.T) {
	m := New(Config{Prompt: "elf> "})
	m = typeText(m, "seed")
	m = press(m, tea.KeyEnter)

	view := m.View()
	if !strings.Contains(view, "elf>") || !strings.Contains(view, "seed") {
		t.Errorf("final view should show the submitted line, got %q", view)
	}
}
