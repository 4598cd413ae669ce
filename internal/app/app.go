package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mastermind/internal/ai"
	"github.com/abhisek/mastermind/internal/appstate"
	"github.com/abhisek/mastermind/internal/logging"
	"github.com/abhisek/mastermind/internal/resources"
	"github.com/abhisek/mastermind/internal/router"
	"github.com/abhisek/mastermind/internal/screen"
	"github.com/abhisek/mastermind/internal/screens/curriculum"
	"github.com/abhisek/mastermind/internal/screens/dashboard"
	"github.com/abhisek/mastermind/internal/screens/notice"
	"github.com/abhisek/mastermind/internal/screens/planner"
	"github.com/abhisek/mastermind/internal/screens/quiz"
	resourcesscreen "github.com/abhisek/mastermind/internal/screens/resources"
	"github.com/abhisek/mastermind/internal/screens/settings"
	"github.com/abhisek/mastermind/internal/ui/layout"
	"github.com/abhisek/mastermind/internal/view"
)

// Options wires the TUI to its dependencies.
type Options struct {
	State *appstate.State
	// AI is nil when no model provider is configured; the planner and quiz
	// then show a notice instead.
	AI        *ai.Service
	Resources []resources.Resource
	Opener    resources.Opener
	Log       *logging.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	active view.ID
	width  int
	height int
}

// newAppModel creates a new AppModel on the dashboard.
func newAppModel(opts Options) AppModel {
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}
	m := AppModel{opts: opts, active: view.Dashboard}
	m.router = router.New(m.build(view.Dashboard))
	return m
}

// build creates a fresh screen for id.
func (m AppModel) build(id view.ID) screen.Screen {
	switch id {
	case view.Dashboard:
		return dashboard.New(m.opts.State)
	case view.Curriculum:
		return curriculum.New(m.opts.State)
	case view.Planner:
		if m.opts.AI == nil {
			return notice.AIUnavailable(id.Label())
		}
		return planner.New(m.opts.State, m.opts.AI, m.opts.Log)
	case view.Quiz:
		if m.opts.AI == nil {
			return notice.AIUnavailable(id.Label())
		}
		return quiz.New(m.opts.State, m.opts.AI, m.opts.Log)
	case view.Resources:
		return resourcesscreen.New(m.opts.Resources, m.opts.Opener, m.opts.Log)
	case view.Settings:
		return settings.New(m.opts.State, m.opts.Log)
	}
	panic(fmt.Sprintf("app: unhandled view %d", id))
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

// capturing reports whether the active screen currently owns every key.
func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturesInput()
}

func (m AppModel) switchTo(id view.ID) (AppModel, tea.Cmd) {
	if !id.Valid() || (id == m.active && m.router.Depth() == 1) {
		return m, nil
	}
	m.opts.Log.Debug("switch view", "view", id.Label())
	m.active = id
	cmd := m.router.Reset(m.build(id))
	if m.width > 0 && m.height > 0 {
		return m, tea.Batch(cmd, m.router.Update(m.contentSize()))
	}
	return m, cmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.router.Update(m.contentSize())

	case view.SwitchMsg:
		return m.switchTo(msg.ID)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
		if !m.capturing() && m.router.Depth() == 1 {
			if id, ok := view.FromKey(msg.String()); ok {
				return m.switchTo(id)
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.frame())
	v.AltScreen = true
	return v
}

// contentSize is the area left for the active screen beside the sidebar
// and between the header and footer.
func (m AppModel) contentSize() screen.SizeMsg {
	_, _, _, size := m.chrome()
	return size
}

func (m AppModel) chrome() (header, sidebar, footer string, size screen.SizeMsg) {
	us := m.opts.State.Settings()
	days := us.DaysRemaining(m.opts.State.Now())
	header = layout.RenderHeader(m.router.Active().Title(), us.ExamType.Label(), days, m.width)
	footer = layout.RenderFooter(m.hints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	labels := make([]string, 0, len(view.All()))
	for _, id := range view.All() {
		labels = append(labels, id.Label())
	}
	sidebar = layout.RenderSidebar(labels, int(m.active), contentHeight)

	contentWidth := max(m.width-lipgloss.Width(sidebar), 0)
	return header, sidebar, footer, screen.SizeMsg{Width: contentWidth, Height: contentHeight}
}

// frame renders the whole window: header, sidebar beside the active
// screen, and footer.
func (m AppModel) frame() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header, sidebar, footer, size := m.chrome()
	content := lipgloss.JoinHorizontal(lipgloss.Top,
		sidebar,
		lipgloss.NewStyle().Width(size.Width).MaxHeight(size.Height).Render(m.router.View(size.Width, size.Height)),
	)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) hints() []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	}
	if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
