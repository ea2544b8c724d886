package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// WelcomeInfo contains information to display in the welcome screen.
type WelcomeInfo struct {
	// Version is the elf version string
	Version string
	// Root is the directory commands were discovered in
	Root string
	// Commands is the number of discovered commands
	Commands int
}

// tips is the list of tips to display in the welcome screen.
// A "tip of the day" is selected based on the current date.
var tips = []string{
	"press Tab repeatedly to cycle through matching commands",
	"press Up/Down to navigate command history",
	"press Ctrl+A to jump to start of line",
	"press Ctrl+E to jump to end of line",
	"press Ctrl+D on an empty line to exit",
	"use list-commands to see every command and its kind",
	"run elf <command> [args...] to skip the shell",
	"add a command by creating elf-<name>/impl in the suite root",
	"set ELF_ROOT to discover commands outside the working directory",
	"set logLevel: debug in ~/.elf/config.yaml to see discovery details",
	"elf --install copies the suite into your bin directory",
}

var elfLogo = []string{
	"      _  __ ",
	"  ___| |/ _|",
	" / _ \\ | |_ ",
	"|  __/ |  _|",
	" \\___|_|_|  ",
}

// getTipOfTheDay returns a tip based on the current date.
// The same tip is shown for the entire day, changing at midnight.
func getTipOfTheDay() string {
	if len(tips) == 0 {
		return ""
	}
	now := time.Now()
	daysSinceEpoch := now.Year()*365 + int(now.Month())*31 + now.Day()
	return tips[daysSinceEpoch%len(tips)]
}

// RenderWelcome renders the welcome screen to the given writer: the logo on
// the left and suite info on the right.
func RenderWelcome(w io.Writer, info WelcomeInfo, termWidth int) {
	titleStyle := lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	logoStyle := lipgloss.NewStyle().Foreground(ColorYellow)
	labelStyle := lipgloss.NewStyle().Foreground(ColorGray)
	valueStyle := lipgloss.NewStyle().Foreground(ColorYellow)
	dimStyle := lipgloss.NewStyle().Foreground(ColorGray).Italic(true)

	logoWidth := 12
	minGap := 4
	maxInfoWidth := 48

	var infoLines []string
	infoLines = append(infoLines, titleStyle.Render("ELF Interactive Terminal"))
	infoLines = append(infoLines, "")

	if info.Version != "" && info.Version != "dev" {
		infoLines = append(infoLines, labelStyle.Render("version:  ")+valueStyle.Render(info.Version))
	} else {
		infoLines = append(infoLines, labelStyle.Render("version:  ")+dimStyle.Render("development"))
	}
	infoLines = append(infoLines, labelStyle.Render("root:     ")+valueStyle.Render(info.Root))
	if info.Commands == 0 {
		infoLines = append(infoLines, labelStyle.Render("commands: ")+dimStyle.Render("none found"))
	} else {
		infoLines = append(infoLines, labelStyle.Render("commands: ")+valueStyle.Render(strconv.Itoa(info.Commands)))
	}

	hint := "Type 'help' for available commands or press Tab for suggestions."
	tip := getTipOfTheDay()

	numLines := max(len(elfLogo), len(infoLines))

	infoWidth := min(termWidth-logoWidth-minGap, maxInfoWidth)

	if infoWidth < 20 {
		// Terminal too narrow, just show info without logo
		for _, line := range infoLines {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, hint)
		if tip != "" {
			fmt.Fprintln(w, dimStyle.Render("tip: "+tip))
		}
		fmt.Fprintln(w)
		return
	}

	var output strings.Builder
	output.WriteString("\n")

	gap := strings.Repeat(" ", minGap)
	for i := 0; i < numLines; i++ {
		logoLine := strings.Repeat(" ", logoWidth)
		if i < len(elfLogo) {
			logoLine = logoStyle.Render(elfLogo[i])
		}

		var infoLine string
		if i < len(infoLines) {
			infoLine = infoLines[i]
		}

		output.WriteString(logoLine + gap + infoLine + "\n")
	}

	output.WriteString("\n")
	output.WriteString(hint + "\n")
	if tip != "" {
		output.WriteString(dimStyle.Render("tip: "+tip) + "\n")
	}
	output.WriteString("\n")

	fmt.Fprint(w, output.String())
}
