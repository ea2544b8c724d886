package input

import (
	"strconv"
	"strings"

	"github.com/atinylittleshell/elf/internal/repl/render"
	"github.com/charmbracelet/lipgloss"
)

// RenderConfig holds styling configuration for rendering input components.
type RenderConfig struct {
	// PromptStyle is the style applied to the prompt string.
	PromptStyle lipgloss.Style

	// CursorStyle is the style applied to the cursor character.
	CursorStyle lipgloss.Style

	// CompletionPanelStyle is the style for the completion panel border/container.
	CompletionPanelStyle lipgloss.Style

	// SelectedStyle is the style for the selected completion candidate.
	SelectedStyle lipgloss.Style
}

// DefaultRenderConfig returns a RenderConfig with sensible default styles.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		PromptStyle: render.PromptStyle,
		CursorStyle: lipgloss.NewStyle().Reverse(true),
		CompletionPanelStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(render.ColorYellow),
		SelectedStyle: render.HighlightStyle,
	}
}

// Renderer handles rendering of input components.
type Renderer struct {
	config      RenderConfig
	width       int
	highlighter *Highlighter
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RenderConfig, h *Highlighter) *Renderer {
	if h == nil {
		h = NewHighlighter(nil)
	}

	return &Renderer{
		config:      config,
		width:       80,
		highlighter: h,
	}
}

// SetWidth sets the terminal width for rendering.
func (r *Renderer) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// Width returns the current terminal width.
func (r *Renderer) Width() int {
	return r.width
}

// RenderInputLine renders the prompt, the highlighted text and the cursor.
func (r *Renderer) RenderInputLine(prompt string, buffer *Buffer, focused bool) string {
	var b strings.Builder
	b.WriteString(r.config.PromptStyle.Render(prompt))

	runes := []rune(buffer.Text())
	pos := buffer.Pos()

	for _, s := range r.highlighter.spans(runes) {
		style := r.highlighter.Style(s.token)
		seg := runes[s.start:s.end]
		if focused && pos >= s.start && pos < s.end {
			k := pos - s.start
			b.WriteString(renderRunes(style, seg[:k]))
			b.WriteString(r.config.CursorStyle.Render(string(seg[k])))
			b.WriteString(renderRunes(style, seg[k+1:]))
			continue
		}
		b.WriteString(renderRunes(style, seg))
	}

	if focused && pos >= len(runes) {
		b.WriteString(r.config.CursorStyle.Render(" "))
	}
	return b.String()
}

// RenderCompletionBox renders the candidates of a cycle in a box.
// maxVisible controls how many items are visible at once (scrolling window).
func (r *Renderer) RenderCompletionBox(candidates []string, selected int, maxVisible int) string {
	total := len(candidates)
	if total == 0 {
		return ""
	}
	if maxVisible <= 0 {
		maxVisible = 4
	}

	startIdx, endIdx := calculateVisibleWindow(max(selected, 0), total, maxVisible)

	var content strings.Builder
	for i := startIdx; i < endIdx; i++ {
		if i > startIdx {
			content.WriteString("\n")
		}

		posInWindow := i - startIdx
		var prefix string
		switch {
		case posInWindow == 0 && startIdx > 0:
			prefix = formatScrollIndicator("↑", startIdx)
		case posInWindow == maxVisible-1 && endIdx < total:
			prefix = formatScrollIndicator("↓", total-endIdx)
		default:
			prefix = "     "
		}

		if i == selected {
			content.WriteString(prefix + "> ")
			content.WriteString(r.config.SelectedStyle.Render(candidates[i]))
		} else {
			content.WriteString(prefix + "  ")
			content.WriteString(candidates[i])
		}
	}

	return r.config.CompletionPanelStyle.
		Width(max(1, r.width-2)).
		Render(content.String())
}

// RenderFullView renders the input line and, while a cycle with more than
// one candidate is running, the completion box below it.
func (r *Renderer) RenderFullView(prompt string, buffer *Buffer, focused bool, candidates []string, selected int) string {
	var result strings.Builder

	// Start at column 0 in case earlier output left the cursor mid-line
	result.WriteString("\r\033[K")
	result.WriteString(r.RenderInputLine(prompt, buffer, focused))

	if len(candidates) > 1 {
		result.WriteString("\n")
		result.WriteString(r.RenderCompletionBox(candidates, selected, 4))
	}

	return result.String()
}

// RenderFinalView renders the line as it stays on screen after submission.
func (r *Renderer) RenderFinalView(prompt, text string) string {
	return r.config.PromptStyle.Render(prompt) + r.highlighter.Highlight(text)
}

func renderRunes(style lipgloss.Style, runes []rune) string {
	if len(runes) == 0 {
		return ""
	}
	return style.Render(string(runes))
}

// calculateVisibleWindow determines the start and end indices for a scrolling window.
func calculateVisibleWindow(selected, total, maxVisible int) (start, end int) {
	if total <= maxVisible {
		return 0, total
	}

	// Try to keep selection roughly in the middle
	switch {
	case selected < 2:
		start = 0
	case selected >= total-2:
		start = total - maxVisible
	default:
		start = selected - 1
	}

	end = start + maxVisible
	if end > total {
		end = total
		start = max(end-maxVisible, 0)
	}
	return start, end
}

// formatScrollIndicator formats a scroll indicator with count.
func formatScrollIndicator(arrow string, count int) string {
	n := strconv.Itoa(count)
	if len(n) < 3 {
		n = strings.Repeat(" ", 3-len(n)) + n
	}
	return arrow + " " + n
}
