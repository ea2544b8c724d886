package input

import (
	"slices"
	"unicode"
)

// Buffer holds the line being edited as runes plus a cursor position.
type Buffer struct {
	runes []rune
	pos   int
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{runes: []rune{}}
}

// NewBufferWithText creates a buffer with initial text and the cursor at the end.
func NewBufferWithText(text string) *Buffer {
	b := NewBuffer()
	b.SetText(text)
	return b
}

// Text returns the current text content as a string.
func (b *Buffer) Text() string {
	return string(b.runes)
}

// Len returns the length of the text in runes.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// Pos returns the current cursor position.
func (b *Buffer) Pos() int {
	return b.pos
}

// SetText replaces the content and moves the cursor to the end.
func (b *Buffer) SetText(text string) {
	b.runes = []rune(text)
	b.pos = len(b.runes)
}

// Clear removes all text from the buffer and resets the cursor.
func (b *Buffer) Clear() {
	b.runes = []rune{}
	b.pos = 0
}

// SetPos moves the cursor, clamped to [0, Len()].
func (b *Buffer) SetPos(pos int) {
	b.pos = clamp(pos, 0, len(b.runes))
}

// CursorStart moves the cursor to the start of the buffer.
func (b *Buffer) CursorStart() {
	b.pos = 0
}

// CursorEnd moves the cursor to the end of the buffer.
func (b *Buffer) CursorEnd() {
	b.pos = len(b.runes)
}

// InsertRunes inserts runes at the cursor and moves the cursor past them.
func (b *Buffer) InsertRunes(runes []rune) {
	if len(runes) == 0 {
		return
	}
	b.runes = slices.Insert(b.runes, b.pos, runes...)
	b.pos += len(runes)
}

// Replace swaps the runes in [start, end) for text and puts the cursor at the
// end of the inserted text.
func (b *Buffer) Replace(start, end int, text string) {
	start = clamp(start, 0, len(b.runes))
	end = clamp(end, start, len(b.runes))
	inserted := []rune(text)
	b.runes = slices.Replace(b.runes, start, end, inserted...)
	b.pos = start + len(inserted)
}

// DeleteCharBackward deletes the character before the cursor.
// Returns true if a character was deleted.
func (b *Buffer) DeleteCharBackward() bool {
	if b.pos == 0 {
		return false
	}
	b.runes = slices.Delete(b.runes, b.pos-1, b.pos)
	b.pos--
	return true
}

// DeleteCharForward deletes the character at the cursor.
// Returns true if a character was deleted.
func (b *Buffer) DeleteCharForward() bool {
	if b.pos >= len(b.runes) {
		return false
	}
	b.runes = slices.Delete(b.runes, b.pos, b.pos+1)
	return true
}

// DeleteBeforeCursor deletes all text before the cursor.
func (b *Buffer) DeleteBeforeCursor() {
	b.runes = slices.Delete(b.runes, 0, b.pos)
	b.pos = 0
}

// DeleteAfterCursor deletes all text after the cursor.
func (b *Buffer) DeleteAfterCursor() {
	b.runes = b.runes[:b.pos]
}

// DeleteWordBackward deletes the word to the left of the cursor.
func (b *Buffer) DeleteWordBackward() {
	end := b.pos
	b.WordBackward()
	b.runes = slices.Delete(b.runes, b.pos, end)
}

// WordBackward moves the cursor to the start of the previous word.
// A word is a sequence of non-whitespace characters.
func (b *Buffer) WordBackward() {
	i := b.pos
	for i > 0 && unicode.IsSpace(b.runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(b.runes[i-1]) {
		i--
	}
	b.pos = i
}

// WordForward moves the cursor past the end of the next word.
func (b *Buffer) WordForward() {
	i := b.pos
	for i < len(b.runes) && unicode.IsSpace(b.runes[i]) {
		i++
	}
	for i < len(b.runes) && !unicode.IsSpace(b.runes[i]) {
		i++
	}
	b.pos = i
}

// TextBeforeCursor returns the text before the cursor.
func (b *Buffer) TextBeforeCursor() string {
	return string(b.runes[:b.pos])
}

// clamp returns value clamped to the range [low, high].
func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
