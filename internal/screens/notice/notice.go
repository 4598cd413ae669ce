package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mastermind/internal/screen"
	"github.com/abhisek/mastermind/internal/ui/theme"
)

// NoticeScreen fills a view that cannot run, with a short explanation.
type NoticeScreen struct {
	title   string
	heading string
	body    string
}

var _ screen.Screen = (*NoticeScreen)(nil)

// New creates a NoticeScreen.
func New(title, heading, body string) *NoticeScreen {
	return &NoticeScreen{title: title, heading: heading, body: body}
}

// AIUnavailable is shown in place of the planner and quiz when no model
// provider could be configured.
func AIUnavailable(title string) *NoticeScreen {
	return New(title, "AI features unavailable",
		"No model provider is configured.\n\n"+
			"Set GEMINI_API_KEY, or choose another provider with\n"+
			"MASTERMIND_LLM_PROVIDER (gemini, openai, anthropic, openrouter)\n"+
			"and its API key, then restart mastermind.\n\n"+
			"Variables can also go in ~/.config/mastermind/.env")
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	content := theme.Heading.Render("╌╌ "+n.heading+" ╌╌") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(n.body)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (n *NoticeScreen) Title() string {
	return n.title
}
