package input

import (
	"strings"
	"unicode"
)

// Completer hands out completion candidates one Tab press at a time.
// *completion.Engine implements it.
type Completer interface {
	// Complete returns the next candidate for prefix, starting a new cycle
	// when isNewRequest is set or the prefix changed.
	Complete(prefix string, isNewRequest bool) (string, bool)

	// Reset ends the current cycle.
	Reset()

	// Candidates returns the candidates of the current cycle.
	Candidates() []string

	// Selected returns the index of the candidate handed out last, or -1.
	Selected() int
}

// CompletionState tracks where in the line the current completion cycle
// writes its candidates.
type CompletionState struct {
	// active indicates whether a completion cycle is in progress
	active bool

	// prefix is the text that was typed before the first Tab press
	prefix string

	// startPos and endPos delimit, in runes, the text the next candidate replaces
	startPos int
	endPos   int

	// originalText and originalPos restore the line on cancel
	originalText string
	originalPos  int
}

// NewCompletionState creates a new CompletionState in its initial (inactive) state.
func NewCompletionState() *CompletionState {
	return &CompletionState{}
}

// Activate starts tracking a cycle for prefix that replaces [start, end).
func (cs *CompletionState) Activate(prefix string, start, end int, originalText string, originalPos int) {
	cs.active = true
	cs.prefix = prefix
	cs.startPos = start
	cs.endPos = end
	cs.originalText = originalText
	cs.originalPos = originalPos
}

// Reset clears all completion state and returns to inactive mode.
func (cs *CompletionState) Reset() {
	*cs = CompletionState{}
}

// IsActive returns whether completion mode is currently active.
func (cs *CompletionState) IsActive() bool {
	return cs.active
}

// Prefix returns the text being completed.
func (cs *CompletionState) Prefix() string {
	return cs.prefix
}

// StartPos returns the start position for applying a completion.
func (cs *CompletionState) StartPos() int {
	return cs.startPos
}

// EndPos returns the end position for applying a completion.
func (cs *CompletionState) EndPos() int {
	return cs.endPos
}

// SetEndPos moves the end of the replaced region after a candidate was applied.
func (cs *CompletionState) SetEndPos(end int) {
	cs.endPos = end
}

// OriginalText returns the line as it was before the cycle started.
func (cs *CompletionState) OriginalText() string {
	return cs.originalText
}

// OriginalPos returns the cursor position before the cycle started.
func (cs *CompletionState) OriginalPos() int {
	return cs.originalPos
}

// GetWordBoundary returns the rune range of the whitespace-delimited word
// around pos.
func GetWordBoundary(text string, pos int) (start, end int) {
	runes := []rune(text)
	pos = clamp(pos, 0, len(runes))

	start = pos
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	end = pos
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}
	return start, end
}

// IsCommandPosition reports whether a word starting at rune start is the
// first word of the line.
func IsCommandPosition(text string, start int) bool {
	runes := []rune(text)
	start = clamp(start, 0, len(runes))
	return strings.TrimSpace(string(runes[:start])) == ""
}
