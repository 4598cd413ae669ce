package app

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mastermind/internal/ai"
	"github.com/abhisek/mastermind/internal/appstate"
	"github.com/abhisek/mastermind/internal/llm"
	"github.com/abhisek/mastermind/internal/resources"
	"github.com/abhisek/mastermind/internal/router"
	"github.com/abhisek/mastermind/internal/screen"
	"github.com/abhisek/mastermind/internal/screens/curriculum"
	"github.com/abhisek/mastermind/internal/screens/notice"
	"github.com/abhisek/mastermind/internal/screens/planner"
	"github.com/abhisek/mastermind/internal/screens/quiz"
	"github.com/abhisek/mastermind/internal/store"
	"github.com/abhisek/mastermind/internal/view"
)

func newModel(t *testing.T, withAI bool) AppModel {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:app_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	state, err := appstate.Open(t.Context(), st.SlotRepo(), appstate.Options{})
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	opts := Options{State: state, Resources: resources.Builtin()}
	if withAI {
		opts.AI = ai.NewService(llm.NewMockProvider(), ai.DefaultConfig())
	}
	return newAppModel(opts)
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

func TestApp_StartsOnDashboard(t *testing.T) {
	m := newModel(t, true)
	if m.active != view.Dashboard {
		t.Errorf("active = %v, want dashboard", m.active)
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d", m.router.Depth())
	}
}

func TestApp_NumberKeysSwitchViews(t *testing.T) {
	m := newModel(t, true)

	m, _ = update(m, key('2'))
	if m.active != view.Curriculum {
		t.Fatalf("active = %v, want curriculum", m.active)
	}
	if _, ok := m.router.Active().(*curriculum.CurriculumScreen); !ok {
		t.Fatalf("active screen = %T", m.router.Active())
	}

	m, _ = update(m, key('3'))
	if _, ok := m.router.Active().(*planner.PlannerScreen); !ok {
		t.Fatalf("active screen = %T, want planner", m.router.Active())
	}
}

func TestApp_CapturedInputBlocksShortcuts(t *testing.T) {
	m := newModel(t, true)
	m, _ = update(m, key('4'))
	if _, ok := m.router.Active().(*quiz.QuizScreen); !ok {
		t.Fatalf("active screen = %T, want quiz", m.router.Active())
	}

	// The topic field has focus, so digits are typed rather than switching.
	m, _ = update(m, key('1'))
	if m.active != view.Quiz {
		t.Errorf("active = %v, want quiz to keep the key", m.active)
	}
}

func TestApp_SwitchMsg(t *testing.T) {
	m := newModel(t, true)
	m, _ = update(m, view.SwitchMsg{ID: view.Settings})
	if m.active != view.Settings {
		t.Errorf("active = %v, want settings", m.active)
	}
	m, _ = update(m, view.SwitchMsg{ID: view.ID(42)})
	if m.active != view.Settings {
		t.Error("invalid view id should be ignored")
	}
}

func TestApp_NoProviderShowsNotice(t *testing.T) {
	m := newModel(t, false)
	for _, id := range []view.ID{view.Planner, view.Quiz} {
		m, _ = update(m, view.SwitchMsg{ID: id})
		if _, ok := m.router.Active().(*notice.NoticeScreen); !ok {
			t.Errorf("%v: active screen = %T, want notice", id, m.router.Active())
		}
	}
}

func TestApp_EveryViewBuilds(t *testing.T) {
	m := newModel(t, true)
	for _, id := range view.All() {
		s := m.build(id)
		if s == nil {
			t.Fatalf("%v: nil screen", id)
		}
		if s.Title() != id.Label() {
			t.Errorf("%v: title = %q, want %q", id, s.Title(), id.Label())
		}
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := newModel(t, true)
	_, cmd := update(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestApp_View(t *testing.T) {
	m := newModel(t, true)
	m, _ = update(m, tea.WindowSizeMsg{Width: 140, Height: 45})

	if !m.View().AltScreen {
		t.Error("expected alt screen")
	}
	content := m.frame()
	for _, want := range []string{"MasterMind", "Smart Planner", "SBA Quiz", "Primary FRCA", "Ctrl+C"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestApp_TooSmall(t *testing.T) {
	m := newModel(t, true)
	m, _ = update(m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if strings.Contains(m.frame(), "Smart Planner") {
		t.Error("small terminals should only show the size message")
	}
}

type sizeRecorder struct{ sizes []screen.SizeMsg }

func (s *sizeRecorder) Init() tea.Cmd { return nil }
func (s *sizeRecorder) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(screen.SizeMsg); ok {
		s.sizes = append(s.sizes, m)
	}
	return s, nil
}
func (s *sizeRecorder) View(int, int) string { return "" }
func (s *sizeRecorder) Title() string        { return "Recorder" }

func TestApp_ForwardsContentSize(t *testing.T) {
	m := newModel(t, true)
	rec := &sizeRecorder{}
	m.router = router.New(rec)

	m, _ = update(m, tea.WindowSizeMsg{Width: 140, Height: 45})

	if len(rec.sizes) != 1 {
		t.Fatalf("got %d size messages, want 1", len(rec.sizes))
	}
	got := rec.sizes[0]
	if got != m.contentSize() {
		t.Errorf("size = %+v, want %+v", got, m.contentSize())
	}
	if got.Width <= 0 || got.Width >= 140 || got.Height <= 0 || got.Height >= 45 {
		t.Errorf("size %+v should leave room for the sidebar and chrome", got)
	}
}
