package input

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Action represents a keyboard action that can be triggered by key bindings.
type Action int

const (
	// ActionNone represents no action (used when a key doesn't match any binding).
	ActionNone Action = iota

	// Navigation actions
	ActionCharacterForward
	ActionCharacterBackward
	ActionWordForward
	ActionWordBackward
	ActionLineStart
	ActionLineEnd

	// Deletion actions
	ActionDeleteCharacterBackward
	ActionDeleteCharacterForward // also EOF on an empty line
	ActionDeleteWordBackward
	ActionDeleteBeforeCursor
	ActionDeleteAfterCursor

	// History
	ActionCursorUp
	ActionCursorDown

	ActionComplete

	// Special actions
	ActionSubmit
	ActionCancel
	ActionInterrupt
	ActionClearScreen
	ActionPaste
)

// String returns the string representation of an Action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionCharacterForward:
		return "CharacterForward"
	case ActionCharacterBackward:
		return "CharacterBackward"
	case ActionWordForward:
		return "WordForward"
	case ActionWordBackward:
		return "WordBackward"
	case ActionLineStart:
		return "LineStart"
	case ActionLineEnd:
		return "LineEnd"
	case ActionDeleteCharacterBackward:
		return "DeleteCharacterBackward"
	case ActionDeleteCharacterForward:
		return "DeleteCharacterForward"
	case ActionDeleteWordBackward:
		return "DeleteWordBackward"
	case ActionDeleteBeforeCursor:
		return "DeleteBeforeCursor"
	case ActionDeleteAfterCursor:
		return "DeleteAfterCursor"
	case ActionCursorUp:
		return "CursorUp"
	case ActionCursorDown:
		return "CursorDown"
	case ActionComplete:
		return "Complete"
	case ActionSubmit:
		return "Submit"
	case ActionCancel:
		return "Cancel"
	case ActionInterrupt:
		return "Interrupt"
	case ActionClearScreen:
		return "ClearScreen"
	case ActionPaste:
		return "Paste"
	default:
		return "Unknown"
	}
}

// KeyBinding maps a set of key strings (as produced by tea.KeyMsg.String)
// to an action.
type KeyBinding struct {
	Keys   []string
	Action Action
}

// KeyMap holds all key bindings for the input component.
type KeyMap struct {
	lookup map[string]Action
}

// NewKeyMap creates a new KeyMap with the given bindings. Later bindings win
// when two bind the same key.
func NewKeyMap(bindings []KeyBinding) *KeyMap {
	km := &KeyMap{lookup: make(map[string]Action)}
	for _, b := range bindings {
		for _, key := range b.Keys {
			km.lookup[key] = b.Action
		}
	}
	return km
}

// DefaultKeyMap returns a KeyMap with default Emacs-style key bindings.
func DefaultKeyMap() *KeyMap {
	return NewKeyMap([]KeyBinding{
		{Keys: []string{"right", "ctrl+f"}, Action: ActionCharacterForward},
		{Keys: []string{"left", "ctrl+b"}, Action: ActionCharacterBackward},
		{Keys: []string{"alt+right", "ctrl+right", "alt+f"}, Action: ActionWordForward},
		{Keys: []string{"alt+left", "ctrl+left", "alt+b"}, Action: ActionWordBackward},
		{Keys: []string{"home", "ctrl+a"}, Action: ActionLineStart},
		{Keys: []string{"end", "ctrl+e"}, Action: ActionLineEnd},

		{Keys: []string{"backspace", "ctrl+h"}, Action: ActionDeleteCharacterBackward},
		{Keys: []string{"delete", "ctrl+d"}, Action: ActionDeleteCharacterForward},
		{Keys: []string{"ctrl+w", "alt+backspace"}, Action: ActionDeleteWordBackward},
		{Keys: []string{"ctrl+u"}, Action: ActionDeleteBeforeCursor},
		{Keys: []string{"ctrl+k"}, Action: ActionDeleteAfterCursor},

		{Keys: []string{"up", "ctrl+p"}, Action: ActionCursorUp},
		{Keys: []string{"down", "ctrl+n"}, Action: ActionCursorDown},

		{Keys: []string{"tab"}, Action: ActionComplete},

		{Keys: []string{"enter"}, Action: ActionSubmit},
		{Keys: []string{"esc"}, Action: ActionCancel},
		{Keys: []string{"ctrl+c"}, Action: ActionInterrupt},
		{Keys: []string{"ctrl+l"}, Action: ActionClearScreen},
		{Keys: []string{"ctrl+v"}, Action: ActionPaste},
	})
}

// Lookup finds the action for the given key message.
// Returns ActionNone if no binding matches.
func (km *KeyMap) Lookup(msg tea.KeyMsg) Action {
	if action, ok := km.lookup[msg.String()]; ok {
		return action
	}
	return ActionNone
}
