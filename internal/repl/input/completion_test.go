package input

import "testing"

func TestGetWordBoundary(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		pos       int
		wantStart int
		wantEnd   int
	}{
		{"empty", "", 0, 0, 0},
		{"end of word", "li", 2, 0, 2},
		{"inside word", "config set", 3, 0, 6},
		{"second word", "config set", 9, 7, 10},
		{"after space", "config ", 7, 7, 7},
		{"leading space", "  seed", 4, 2, 6},
		{"multibyte", "héllo x", 2, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := GetWordBoundary(tt.text, tt.pos)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("GetWordBoundary(%q, %d) = (%d, %d), want (%d, %d)",
					tt.text, tt.pos, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestIsCommandPosition(t *testing.T) {
	tests := []struct {
		text  string
		start int
		want  bool
	}{
		{"", 0, true},
		{"seed", 0, true},
		{"  seed", 2, true},
		{"config set", 7, false},
	}

	for _, tt := range tests {
		if got := IsCommandPosition(tt.text, tt.start); got != tt.want {
			t.Errorf("IsCommandPosition(%q, %d) = %v, want %v", tt.text, tt.start, got, tt.want)
		}
	}
}

func TestCompletionState(t *testing.T) {
	cs := NewCompletionState()
	if cs.IsActive() {
		t.Fatal("new state should be inactive")
	}

	cs.Activate("li", 0, 2, "li x", 2)
	if !cs.IsActive() || cs.Prefix() != "li" || cs.StartPos() != 0 || cs.EndPos() != 2 {
		t.Errorf("unexpected state after Activate: %+v", cs)
	}
	if cs.OriginalText() != "li x" || cs.OriginalPos() != 2 {
		t.Errorf("original line not kept: %+v", cs)
	}

	cs.SetEndPos(4)
	if cs.EndPos() != 4 {
		t.Errorf("expected end 4, got %d", cs.EndPos())
	}

	cs.Reset()
	if cs.IsActive() || cs.Prefix() != "" {
		t.Errorf("Reset should clear state: %+v", cs)
	}
}
