package settings

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mastermind/internal/appstate"
	"github.com/abhisek/mastermind/internal/router"
	profile "github.com/abhisek/mastermind/internal/settings"
	"github.com/abhisek/mastermind/internal/store"
)

func newState(t *testing.T) *appstate.State {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:settingsscreen_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	s, err := appstate.Open(t.Context(), st.SlotRepo(), appstate.Options{})
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	return s
}

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

var (
	tab      = tea.KeyPressMsg{Code: tea.KeyTab}
	shiftTab = tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	enter    = tea.KeyPressMsg{Code: tea.KeyEnter}
	ctrlS    = tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
)

func typeText(s *SettingsScreen, text string) {
	for _, r := range text {
		s.Update(key(r))
	}
}

func TestSettings_LoadsProfile(t *testing.T) {
	state := newState(t)
	s := New(state, nil)

	us := state.Settings()
	if s.name.Value() != us.Name {
		t.Errorf("name = %q, want %q", s.name.Value(), us.Name)
	}
	if s.date.Value() != us.ExamDate.String() {
		t.Errorf("date = %q, want %q", s.date.Value(), us.ExamDate.String())
	}
	if s.exam != profile.FRCAPrimary {
		t.Errorf("exam = %v", s.exam)
	}
	if !s.CapturesInput() {
		t.Error("name field should have focus")
	}
	if !strings.Contains(s.View(100, 40), "Curriculum will balance Clinical and Basic Sciences.") {
		t.Error("expected exam focus hint")
	}
}

func TestSettings_SaveReplacesProfile(t *testing.T) {
	state := newState(t)
	s := New(state, nil)

	s.name.SetValue("")
	typeText(s, "Dr Okafor")
	s.Update(tab)
	s.Update(key('l'))
	s.Update(key('l'))
	if s.exam != profile.EDAICPart1 {
		t.Fatalf("exam = %v, want EDAIC", s.exam)
	}
	if !strings.Contains(s.View(100, 40), "Curriculum will prioritize Basic Sciences and Physiology.") {
		t.Error("expected EDAIC focus hint")
	}
	s.Update(tab)
	s.date.SetValue("")
	typeText(s, "2027-03-15")
	s.Update(tab)
	s.Update(enter)

	got := state.Settings()
	if got.Name != "Dr Okafor" || got.ExamType != profile.EDAICPart1 || got.ExamDate.String() != "2027-03-15" {
		t.Fatalf("saved %+v", got)
	}
	if !strings.Contains(s.View(100, 40), "Settings saved.") {
		t.Error("expected saved notice")
	}
}

func TestSettings_ExamCyclesBothWays(t *testing.T) {
	s := New(newState(t), nil)
	s.Update(tab)
	s.Update(key('h'))
	if s.exam != profile.EDAICPart1 {
		t.Errorf("left from first = %v, want last", s.exam)
	}
	s.Update(key('l'))
	if s.exam != profile.FRCAPrimary {
		t.Errorf("right from last = %v, want first", s.exam)
	}
	if s.CapturesInput() {
		t.Error("exam selector should not capture input")
	}
}

func TestSettings_InvalidFormNotSaved(t *testing.T) {
	tests := []struct {
		name    string
		setName string
		setDate string
		want    string
	}{
		{"blank name", "   ", "2027-01-01", "Name cannot be empty."},
		{"bad date", "Sam", "15/03/2027", "Exam date must be YYYY-MM-DD."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newState(t)
			before := state.Settings()
			s := New(state, nil)
			s.name.SetValue(tt.setName)
			s.date.SetValue(tt.setDate)
			s.Update(ctrlS)

			if !strings.Contains(s.View(100, 40), tt.want) {
				t.Errorf("expected %q in view", tt.want)
			}
			after := state.Settings()
			if after.Name != before.Name || !after.ExamDate.Equal(before.ExamDate.Time) {
				t.Errorf("profile changed: %+v", after)
			}
		})
	}
}

func TestSettings_ResetProgressConfirmed(t *testing.T) {
	state := newState(t)
	if _, err := state.ToggleTopic(t.Context(), "phys", "p1", ""); err != nil {
		t.Fatal(err)
	}
	s := New(state, nil)

	s.Update(shiftTab)
	_, cmd := s.Update(enter)
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	confirm := push.Screen

	_, cmd = confirm.Update(key('y'))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if state.Stats().Completed != 0 {
		t.Errorf("completed = %d after reset", state.Stats().Completed)
	}

	s.Update(progressResetMsg{})
	if !strings.Contains(s.View(100, 40), "Syllabus progress reset.") {
		t.Error("expected reset notice")
	}
}

func TestSettings_ResetProgressCancelled(t *testing.T) {
	state := newState(t)
	if _, err := state.ToggleTopic(t.Context(), "phys", "p1", ""); err != nil {
		t.Fatal(err)
	}
	confirm := newConfirm(state)

	_, cmd := confirm.Update(key('n'))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("cancel should pop")
	}
	if state.Stats().Completed != 1 {
		t.Errorf("completed = %d, want 1", state.Stats().Completed)
	}
}

func TestSettings_ConfirmMenuDefaultsToCancel(t *testing.T) {
	state := newState(t)
	if _, err := state.ToggleTopic(t.Context(), "phys", "p1", ""); err != nil {
		t.Fatal(err)
	}
	confirm := newConfirm(state)

	_, cmd := confirm.Update(enter)
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if state.Stats().Completed != 1 {
		t.Error("enter on the default item should not reset")
	}

	confirm.Update(key('j'))
	confirm.Update(enter)
	if state.Stats().Completed != 0 {
		t.Error("choosing reset from the menu should reset progress")
	}
}
