package input

import (
	"unicode"

	"github.com/atinylittleshell/elf/internal/repl/render"
	"github.com/charmbracelet/lipgloss"
)

// TokenType represents the type of a syntax token for highlighting.
type TokenType int

const (
	TokenDefault    TokenType = iota // arguments and whitespace
	TokenCommandOK                   // command that resolves (green)
	TokenCommandErr                  // command that doesn't (red)
)

// span is a rune range of the line sharing one token type.
type span struct {
	start, end int
	token      TokenType
}

// Highlighter colors the command word of the line by whether it resolves.
type Highlighter struct {
	known  func(name string) bool
	styles map[TokenType]lipgloss.Style
}

// NewHighlighter creates a highlighter. known decides whether a command word
// resolves; a nil known disables highlighting.
func NewHighlighter(known func(name string) bool) *Highlighter {
	return &Highlighter{
		known: known,
		styles: map[TokenType]lipgloss.Style{
			TokenDefault:    lipgloss.NewStyle(),
			TokenCommandOK:  lipgloss.NewStyle().Foreground(render.ColorGreen),
			TokenCommandErr: lipgloss.NewStyle().Foreground(render.ColorRed),
		},
	}
}

// Style returns the style used for a token type.
func (h *Highlighter) Style(t TokenType) lipgloss.Style {
	return h.styles[t]
}

// spans splits runes into leading whitespace, the command word and the rest.
func (h *Highlighter) spans(runes []rune) []span {
	if len(runes) == 0 {
		return nil
	}

	start := 0
	for start < len(runes) && unicode.IsSpace(runes[start]) {
		start++
	}
	end := start
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}

	token := TokenDefault
	if h.known != nil && end > start {
		token = TokenCommandErr
		if h.known(string(runes[start:end])) {
			token = TokenCommandOK
		}
	}

	var out []span
	if start > 0 {
		out = append(out, span{0, start, TokenDefault})
	}
	if end > start {
		out = append(out, span{start, end, token})
	}
	if end < len(runes) {
		out = append(out, span{end, len(runes), TokenDefault})
	}
	return out
}

// Classify returns the token type of the command word in text.
func (h *Highlighter) Classify(text string) TokenType {
	for _, s := range h.spans([]rune(text)) {
		if s.token != TokenDefault {
			return s.token
		}
	}
	return TokenDefault
}

// Highlight renders text with the command word colored.
func (h *Highlighter) Highlight(text string) string {
	runes := []rune(text)
	var out string
	for _, s := range h.spans(runes) {
		out += h.styles[s.token].Render(string(runes[s.start:s.end]))
	}
	return out
}
