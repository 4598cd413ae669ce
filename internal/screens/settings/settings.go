package settings

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mastermind/internal/appstate"
	"github.com/abhisek/mastermind/internal/logging"
	"github.com/abhisek/mastermind/internal/router"
	"github.com/abhisek/mastermind/internal/screen"
	profile "github.com/abhisek/mastermind/internal/settings"
	"github.com/abhisek/mastermind/internal/ui/components"
	"github.com/abhisek/mastermind/internal/ui/layout"
	"github.com/abhisek/mastermind/internal/ui/theme"
	"github.com/abhisek/mastermind/internal/view"
)

type field int

const (
	fieldName field = iota
	fieldExam
	fieldDate
	fieldSave
	fieldReset
	fieldCount
)

// progressResetMsg reports the outcome of a confirmed progress reset.
type progressResetMsg struct {
	Err error
}

// SettingsScreen edits the profile. Changes are held in the form until
// saved; saving replaces the stored profile wholesale.
type SettingsScreen struct {
	state *appstate.State
	log   *logging.Logger

	name   components.TextInput
	date   components.TextInput
	exam   profile.ExamType
	focus  field
	notice string
	errMsg string
}

var _ screen.Screen = (*SettingsScreen)(nil)

// New creates a SettingsScreen filled from the current profile.
func New(state *appstate.State, log *logging.Logger) *SettingsScreen {
	if log == nil {
		log = logging.Nop()
	}
	s := &SettingsScreen{
		state: state,
		log:   log,
		name:  components.NewTextInput("Your name", false, 60),
		date:  components.NewTextInput(profile.DateLayout, false, len(profile.DateLayout)),
	}
	s.load()
	return s
}

func (s *SettingsScreen) load() {
	us := s.state.Settings()
	s.name.SetValue(us.Name)
	s.date.SetValue(us.ExamDate.String())
	s.exam = us.ExamType
	s.setFocus(fieldName)
}

func (s *SettingsScreen) Init() tea.Cmd {
	return s.name.Init()
}

// CapturesInput is true while a text field has the cursor.
func (s *SettingsScreen) CapturesInput() bool {
	return s.focus == fieldName || s.focus == fieldDate
}

func (s *SettingsScreen) setFocus(f field) tea.Cmd {
	s.focus = (f + fieldCount) % fieldCount
	s.name.Blur()
	s.date.Blur()
	switch s.focus {
	case fieldName:
		return s.name.Focus()
	case fieldDate:
		return s.date.Focus()
	}
	return nil
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressResetMsg:
		if msg.Err != nil {
			s.log.Error("reset progress failed", "error", msg.Err)
			s.errMsg = "Could not reset progress: " + msg.Err.Error()
			s.notice = ""
		} else {
			s.notice = "Syllabus progress reset."
			s.errMsg = ""
		}
		return s, nil
	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *SettingsScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		return s.setFocus(s.focus + 1)
	case "shift+tab", "up":
		return s.setFocus(s.focus - 1)
	case "ctrl+s":
		s.save()
		return nil
	case "esc":
		if s.CapturesInput() {
			return s.setFocus(fieldSave)
		}
		return nil
	}

	switch s.focus {
	case fieldName, fieldDate:
		if msg.String() == "enter" {
			return s.setFocus(s.focus + 1)
		}
		var cmd tea.Cmd
		if s.focus == fieldName {
			s.name, cmd = s.name.Update(msg)
		} else {
			s.date, cmd = s.date.Update(msg)
		}
		return cmd

	case fieldExam:
		switch msg.String() {
		case "right", "l", "space", " ", "enter":
			s.cycleExam(1)
		case "left", "h":
			s.cycleExam(-1)
		}

	case fieldSave:
		if msg.String() == "enter" {
			s.save()
		}

	case fieldReset:
		if msg.String() == "enter" {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newConfirm(s.state)}
			}
		}
	}
	return nil
}

func (s *SettingsScreen) cycleExam(step int) {
	all := profile.AllExamTypes()
	i := 0
	for j, t := range all {
		if t == s.exam {
			i = j
		}
	}
	s.exam = all[(i+step+len(all))%len(all)]
}

// form merges the fields into a new profile. The second result describes
// the first invalid field.
func (s *SettingsScreen) form() (profile.UserSettings, string) {
	name := strings.TrimSpace(s.name.Value())
	if name == "" {
		return profile.UserSettings{}, "Name cannot be empty."
	}
	date, err := profile.ParseDate(s.date.Value())
	if err != nil {
		return profile.UserSettings{}, "Exam date must be YYYY-MM-DD."
	}
	return profile.UserSettings{Name: name, ExamType: s.exam, ExamDate: date}, ""
}

func (s *SettingsScreen) save() {
	us, problem := s.form()
	if problem != "" {
		s.errMsg = problem
		s.notice = ""
		return
	}
	if err := s.state.UpdateSettings(context.Background(), us); err != nil {
		s.log.Error("save settings failed", "error", err)
		s.errMsg = "Could not save settings: " + err.Error()
		s.notice = ""
		return
	}
	s.errMsg = ""
	s.notice = "Settings saved."
	s.name.SetValue(us.Name)
}

func (s *SettingsScreen) View(width, height int) string {
	cw := min(width-4, 80)
	label := func(f field, text string) string {
		if s.focus == f {
			return theme.Selected.Render("▸ " + text)
		}
		return theme.Subtitle.Render("  " + text)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Settings"))
	b.WriteString("\n\n")

	b.WriteString(label(fieldName, "Name") + "\n")
	b.WriteString("  " + s.name.View() + "\n\n")

	b.WriteString(label(fieldExam, "Target Exam") + "\n")
	var exams []string
	for _, t := range profile.AllExamTypes() {
		style := theme.ButtonInactive
		if t == s.exam {
			style = theme.ButtonActive
		}
		exams = append(exams, style.Render(t.Label()))
	}
	b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top, exams...) + "\n")
	b.WriteString("  " + theme.Hint.Render(s.exam.Focus()) + "\n\n")

	b.WriteString(label(fieldDate, "Exam Date") + "\n")
	b.WriteString("  " + s.date.View() + "\n\n")

	b.WriteString(components.NewButton("Save", s.focus == fieldSave, nil).View())
	b.WriteString("  ")
	b.WriteString(components.NewButton("Reset progress", s.focus == fieldReset, nil).View())

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.Notice.Render(s.errMsg))
	} else if s.notice != "" {
		b.WriteString("\n\n" + theme.Correct.Render(s.notice))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(theme.Card.Width(cw).Render(b.String()))
}

func (s *SettingsScreen) Title() string {
	return view.Settings.Label()
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Save"},
	}
	if s.focus == fieldExam {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Change exam"})
	}
	return hints
}
