package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mastermind/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// SpinnerTickMsg advances the spinner with the matching ID.
type SpinnerTickMsg struct {
	ID int
}

// Spinner is a loading indicator driven by tea.Tick. Each owner gets its
// own ID so that several spinners never advance each other.
type Spinner struct {
	ID    int
	Label string
	frame int
}

// NewSpinner creates a spinner with the given label.
func NewSpinner(id int, label string) Spinner {
	return Spinner{ID: id, Label: label}
}

// Tick schedules the next frame.
func (s Spinner) Tick() tea.Cmd {
	id := s.ID
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return SpinnerTickMsg{ID: id}
	})
}

// Update advances on its own tick and schedules the next one. Ticks for
// other spinners are ignored.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	tick, ok := msg.(SpinnerTickMsg)
	if !ok || tick.ID != s.ID {
		return s, nil
	}
	s.frame = (s.frame + 1) % len(spinnerFrames)
	return s, s.Tick()
}

// View renders the current frame and label.
func (s Spinner) View() string {
	return lipgloss.NewStyle().Foreground(theme.Primary).Render(spinnerFrames[s.frame]) +
		" " + theme.Body.Render(s.Label)
}
