package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderWelcome(t *testing.T) {
	tests := []struct {
		name      string
		info      WelcomeInfo
		termWidth int
		wantLogo  bool
		wantTexts []string
	}{
		{
			name:      "full info with wide terminal",
			info:      WelcomeInfo{Version: "1.0.0", Root: "/suite", Commands: 3},
			termWidth: 80,
			wantLogo:  true,
			wantTexts: []string{
				"ELF Interactive Terminal",
				"version:  1.0.0",
				"root:     /suite",
				"commands: 3",
				"Type 'help' for available commands",
				"tip:",
			},
		},
		{
			name:      "dev version",
			info:      WelcomeInfo{Version: "dev", Root: "/suite", Commands: 1},
			termWidth: 80,
			wantLogo:  true,
			wantTexts: []string{"development"},
		},
		{
			name:      "no commands",
			info:      WelcomeInfo{Version: "1.0.0", Root: "/empty"},
			termWidth: 80,
			wantLogo:  true,
			wantTexts: []string{"commands: none found"},
		},
		{
			name:      "narrow terminal - no logo",
			info:      WelcomeInfo{Version: "1.0.0", Root: "/suite", Commands: 2},
			termWidth: 30,
			wantLogo:  false,
			wantTexts: []string{"ELF Interactive Terminal", "commands: 2", "Type 'help'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			RenderWelcome(&buf, tt.info, tt.termWidth)
			output := buf.String()

			for _, want := range tt.wantTexts {
				assert.Contains(t, output, want)
			}

			hasLogo := strings.Contains(output, elfLogo[1])
			assert.Equal(t, tt.wantLogo, hasLogo)
		})
	}
}

func TestGetTipOfTheDay(t *testing.T) {
	tip := getTipOfTheDay()
	assert.NotEmpty(t, tip)
	assert.Contains(t, tips, tip)

	// stable within a day
	assert.Equal(t, tip, getTipOfTheDay())
}
