// Package render holds the colors and static screens of the elf shell.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

// ANSI color codes
const (
	ColorCyan   = lipgloss.Color("12") // prompt
	ColorYellow = lipgloss.Color("11") // logo and highlights
	ColorGreen  = lipgloss.Color("10") // known command
	ColorRed    = lipgloss.Color("9")  // unknown command, errors
	ColorGray   = lipgloss.Color("8")  // dim/secondary
)

// Symbols
const (
	SymbolSuccess       = "✓"
	SymbolError         = "✗"
	SymbolSystemMessage = "→"
)

var (
	// PromptStyle is used for the shell prompt.
	PromptStyle = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)

	// SuccessStyle is used for success indicators and known commands.
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen)

	// ErrorStyle is used for error indicators and unknown commands.
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorRed)

	// DimStyle is used for secondary information such as sizes.
	DimStyle = lipgloss.NewStyle().Foreground(ColorGray)

	// HighlightStyle marks the selected completion candidate.
	HighlightStyle = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)

	SystemMessageStyle = lipgloss.NewStyle().Foreground(ColorGray)
)

// StyledSymbol returns a symbol with appropriate styling applied
func StyledSymbol(symbol string, success bool) string {
	switch symbol {
	case SymbolSuccess:
		return SuccessStyle.Render(symbol)
	case SymbolError:
		return ErrorStyle.Render(symbol)
	case SymbolSystemMessage:
		if !success {
			return ErrorStyle.Render(symbol)
		}
		return SystemMessageStyle.Render(symbol)
	default:
		return symbol
	}
}
