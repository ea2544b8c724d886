package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want Action
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, ActionComplete},
		{tea.KeyMsg{Type: tea.KeyEnter}, ActionSubmit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, ActionInterrupt},
		{tea.KeyMsg{Type: tea.KeyCtrlD}, ActionDeleteCharacterForward},
		{tea.KeyMsg{Type: tea.KeyUp}, ActionCursorUp},
		{tea.KeyMsg{Type: tea.KeyDown}, ActionCursorDown},
		{tea.KeyMsg{Type: tea.KeyCtrlA}, ActionLineStart},
		{tea.KeyMsg{Type: tea.KeyCtrlE}, ActionLineEnd},
		{tea.KeyMsg{Type: tea.KeyCtrlV}, ActionPaste},
		{tea.KeyMsg{Type: tea.KeyEsc}, ActionCancel},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f"), Alt: true}, ActionWordForward},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			if got := km.Lookup(tt.msg); got != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestNewKeyMapLaterBindingWins(t *testing.T) {
	km := NewKeyMap([]KeyBinding{
		{Keys: []string{"tab"}, Action: ActionComplete},
		{Keys: []string{"tab"}, Action: ActionSubmit},
	})

	if got := km.Lookup(tea.KeyMsg{Type: tea.KeyTab}); got != ActionSubmit {
		t.Errorf("expected ActionSubmit, got %v", got)
	}
}

func TestActionString(t *testing.T) {
	if ActionComplete.String() != "Complete" {
		t.Errorf("unexpected name %q", ActionComplete.String())
	}
	if Action(999).String() != "Unknown" {
		t.Errorf("unexpected name %q", Action(999).String())
	}
}
