package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_SelectByLetterAndNumber(t *testing.T) {
	opts := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name string
		key  tea.KeyPressMsg
		want int
	}{
		{"letter", key('c'), 2},
		{"number", key('5'), 4},
		{"enter on cursor", tea.KeyPressMsg{Code: tea.KeyEnter}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMultiChoice("Q?", opts, 4)
			m, _ = m.Update(tt.key)
			if !m.Submitted || m.ChosenIndex != tt.want {
				t.Fatalf("submitted=%v chosen=%d, want %d", m.Submitted, m.ChosenIndex, tt.want)
			}
		})
	}
}

func TestMultiChoice_OutOfRangeIgnored(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"x", "y"}, 0)
	m, _ = m.Update(key('e'))
	if m.Submitted {
		t.Fatal("option E does not exist for a two-option question")
	}
}

func TestMultiChoice_LockedAfterSubmit(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"x", "y", "z"}, 1)
	m, _ = m.Update(key('b'))
	m, _ = m.Update(key('c'))
	if m.ChosenIndex != 1 || !m.IsCorrect() {
		t.Fatalf("chosen=%d, want locked at 1", m.ChosenIndex)
	}
}

func TestMultiChoice_ViewLetters(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"x", "y", "z", "w", "v"}, 0)
	v := m.View()
	for _, l := range []string{"A)", "B)", "C)", "D)", "E)"} {
		if !strings.Contains(v, l) {
			t.Errorf("view missing %q", l)
		}
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "one"}, {Label: "two", Disabled: true}, {Label: "three"}})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("selected = %d, want 2", m.Selected)
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	for _, pct := range []int{-5, 0, 57, 100, 140} {
		v := NewProgressBar("", pct, true, 30).View()
		if v == "" {
			t.Errorf("empty view for %d", pct)
		}
	}
	if v := NewProgressBar("", 140, true, 30).View(); !strings.Contains(v, "100%") {
		t.Errorf("overflow not clamped: %q", v)
	}
}

func TestSpinner_IgnoresOtherIDs(t *testing.T) {
	s := NewSpinner(1, "Loading")
	s, cmd := s.Update(SpinnerTickMsg{ID: 2})
	if cmd != nil || s.frame != 0 {
		t.Fatal("foreign tick should not advance the spinner")
	}
	s, cmd = s.Update(SpinnerTickMsg{ID: 1})
	if cmd == nil || s.frame != 1 {
		t.Fatal("own tick should advance and reschedule")
	}
	if !strings.Contains(s.View(), "Loading") {
		t.Error("label missing from view")
	}
}
