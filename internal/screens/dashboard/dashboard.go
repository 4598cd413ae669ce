package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mastermind/internal/appstate"
	"github.com/abhisek/mastermind/internal/curriculum"
	"github.com/abhisek/mastermind/internal/screen"
	"github.com/abhisek/mastermind/internal/ui/components"
	"github.com/abhisek/mastermind/internal/ui/layout"
	"github.com/abhisek/mastermind/internal/ui/theme"
	"github.com/abhisek/mastermind/internal/view"
)

// urgentDays is the countdown below which the days figure turns red.
const urgentDays = 30

// DashboardScreen summarizes progress. It holds no state of its own and
// re-reads the app state on every render.
type DashboardScreen struct {
	state *appstate.State
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates a DashboardScreen.
func New(state *appstate.State) *DashboardScreen {
	return &DashboardScreen{state: state}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch kmsg.String() {
	case "p", "enter":
		return d, view.Switch(view.Planner)
	case "f":
		return d, view.Switch(view.Curriculum)
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	us := d.state.Settings()
	c := d.state.Curriculum()
	stats := curriculum.ComputeStats(c)
	breakdown := curriculum.DomainBreakdown(c)
	days := us.DaysRemaining(d.state.Now())

	var sections []string

	greeting := theme.Title.Render(fmt.Sprintf("Hello, %s.", us.Name)) + "\n" +
		theme.Subtitle.Render("Targeting: ") + theme.Selected.Render(us.ExamType.Label())
	daysStyle := theme.Heading
	if days < urgentDays {
		daysStyle = theme.Incorrect
	}
	countdown := theme.Subtitle.Render("DAYS TO EXAM") + "\n" + daysStyle.Render(fmt.Sprintf("%d", days))
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(max(width-20, 20)).Render(greeting),
		lipgloss.NewStyle().Width(16).Align(lipgloss.Right).Render(countdown),
	))

	weakest := "None"
	if w, ok := curriculum.WeakestDomain(breakdown); ok {
		weakest = w.Name
	}
	cards := []string{
		statCard("Syllabus", fmt.Sprintf("%d%%", stats.Percent())),
		statCard("Topics Done", fmt.Sprintf("%d/%d", stats.Completed, stats.Total)),
		statCard("Focus Area", weakest),
		statCard("Date", us.ExamDate.Format("2 Jan 06")),
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, cards...))

	barWidth := min(width-4, 72)
	overall := components.NewProgressBar("Overall", stats.Percent(), true, barWidth)
	overall.LabelWidth = 28
	sections = append(sections, overall.View())

	var rows []string
	rows = append(rows, theme.Heading.Render("Domain Breakdown"))
	for _, dom := range breakdown {
		bar := components.NewProgressBar(truncate(dom.Name, 28), dom.Percentage, true, barWidth)
		bar.LabelWidth = 28
		rows = append(rows, bar.View())
	}
	sections = append(sections, strings.Join(rows, "\n"))

	sections = append(sections, d.planCard(stats, barWidth))

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n\n"))
}

func (d *DashboardScreen) planCard(stats curriculum.Stats, width int) string {
	remaining := stats.Total - stats.Completed
	if p, ok := d.state.Plan(); ok {
		body := theme.Heading.Render("Current plan: "+p.Title) + "\n" +
			theme.Subtitle.Render(fmt.Sprintf("%d days, %d sessions, created %s",
				len(p.Schedule), p.TotalSessions(), p.CreatedAt.Local().Format("2 Jan 2006")))
		return theme.Card.Width(width).Render(body)
	}
	body := theme.Heading.Render("Need a study plan?") + "\n" +
		theme.Subtitle.Render(fmt.Sprintf("Use the Smart Planner to generate a schedule based on your %d remaining topics.", remaining))
	return theme.Callout.Width(width).Render(body)
}

func statCard(label, value string) string {
	return theme.Card.Width(18).MarginRight(1).Render(
		theme.Subtitle.Render(label) + "\n" + theme.Heading.Render(truncate(value, 14)),
	)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (d *DashboardScreen) Title() string {
	return view.Dashboard.Label()
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "p", Description: "Planner"},
		{Key: "f", Description: "Focus area"},
		{Key: "1-6", Description: "Views"},
	}
}
