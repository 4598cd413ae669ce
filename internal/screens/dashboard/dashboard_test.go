package dashboard

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mastermind/internal/appstate"
	"github.com/abhisek/mastermind/internal/plan"
	"github.com/abhisek/mastermind/internal/settings"
	"github.com/abhisek/mastermind/internal/store"
	"github.com/abhisek/mastermind/internal/view"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newState(t *testing.T) *appstate.State {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:dashboard_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	s, err := appstate.Open(t.Context(), st.SlotRepo(), appstate.Options{
		Now: func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	return s
}

func TestDashboard_FreshProfile(t *testing.T) {
	d := New(newState(t))
	v := d.View(120, 50)

	for _, want := range []string{
		"Hello, Candidate.",
		"Primary FRCA",
		"DAYS TO EXAM",
		"90",
		"0%",
		"Domain Breakdown",
		"Need a study plan?",
		"0/55",
		"remaining",
	} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDashboard_ReflectsProgressAndPlan(t *testing.T) {
	state := newState(t)
	ctx := t.Context()
	if _, err := state.ToggleTopic(ctx, "phys", "p1", ""); err != nil {
		t.Fatal(err)
	}
	err := state.SetPlan(ctx, &plan.StudyPlan{
		Title:     "Final Push",
		Schedule:  []plan.StudyDay{{Day: "Monday", Sessions: []plan.StudySession{{Topic: "Renal"}}}},
		CreatedAt: fixedNow,
	})
	if err != nil {
		t.Fatal(err)
	}
	us := state.Settings()
	us.Name = "Ana"
	us.ExamDate = settings.NewDate(fixedNow.Add(10 * 24 * time.Hour))
	if err := state.UpdateSettings(ctx, us); err != nil {
		t.Fatal(err)
	}

	v := New(state).View(120, 50)
	for _, want := range []string{"Hello, Ana.", "1/55", "Current plan: Final Push", "10"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(v, "Need a study plan?") {
		t.Error("plan prompt should be hidden once a plan exists")
	}
}

func TestDashboard_Shortcuts(t *testing.T) {
	d := New(newState(t))
	tests := []struct {
		key  rune
		want view.ID
	}{
		{'p', view.Planner},
		{'f', view.Curriculum},
	}
	for _, tt := range tests {
		_, cmd := d.Update(tea.KeyPressMsg{Code: tt.key, Text: string(tt.key)})
		if cmd == nil {
			t.Fatalf("%c: expected a command", tt.key)
		}
		msg, ok := cmd().(view.SwitchMsg)
		if !ok || msg.ID != tt.want {
			t.Errorf("%c: got %#v, want switch to %v", tt.key, msg, tt.want)
		}
	}
	if _, cmd := d.Update(tea.KeyPressMsg{Code: 'z', Text: "z"}); cmd != nil {
		t.Error("unbound key should do nothing")
	}
}
