package settings

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mastermind/internal/appstate"
	"github.com/abhisek/mastermind/internal/router"
	"github.com/abhisek/mastermind/internal/screen"
	"github.com/abhisek/mastermind/internal/ui/components"
	"github.com/abhisek/mastermind/internal/ui/layout"
	"github.com/abhisek/mastermind/internal/ui/theme"
)

// confirmScreen asks before wiping syllabus progress. It pops itself
// either way and reports the outcome to the screen below.
type confirmScreen struct {
	state *appstate.State
	menu  components.Menu
}

var _ screen.Screen = (*confirmScreen)(nil)

func newConfirm(state *appstate.State) *confirmScreen {
	c := &confirmScreen{state: state}
	c.menu = components.NewMenu([]components.MenuItem{
		{Label: "Cancel", Action: func() tea.Cmd { return pop }},
		{Label: "Reset progress", Detail: "every topic back to incomplete", Action: c.reset},
	})
	return c
}

func (c *confirmScreen) Init() tea.Cmd { return nil }

func (c *confirmScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "y", "Y":
		return c, c.reset()
	case "n", "N", "esc":
		return c, pop
	}
	var cmd tea.Cmd
	c.menu, cmd = c.menu.Update(msg)
	return c, cmd
}

func (c *confirmScreen) reset() tea.Cmd {
	err := c.state.ResetProgress(context.Background())
	return tea.Sequence(pop, func() tea.Msg { return progressResetMsg{Err: err} })
}

func pop() tea.Msg { return router.PopScreenMsg{} }

func (c *confirmScreen) View(width, height int) string {
	body := theme.Title.Render("Reset progress?") + "\n\n" +
		theme.Body.Render("Your profile and study plan are kept.") + "\n\n" +
		c.menu.View()
	card := theme.Card.Width(min(width-4, 60)).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (c *confirmScreen) Title() string { return "Confirm" }

func (c *confirmScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "↑↓ Enter", Description: "Choose"}, {Key: "y / n", Description: "Reset / Cancel"}}
}
