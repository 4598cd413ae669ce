package planner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"github.com/abhisek/mastermind/internal/ai"
	"github.com/abhisek/mastermind/internal/appstate"
	"github.com/abhisek/mastermind/internal/curriculum"
	"github.com/abhisek/mastermind/internal/logging"
	"github.com/abhisek/mastermind/internal/plan"
	"github.com/abhisek/mastermind/internal/screen"
	"github.com/abhisek/mastermind/internal/ui/components"
	"github.com/abhisek/mastermind/internal/ui/layout"
	"github.com/abhisek/mastermind/internal/ui/theme"
	"github.com/abhisek/mastermind/internal/view"
)

const (
	spinnerID = 1

	minWeeks, maxWeeks = 1, 12
	minHours, maxHours = 1, 12

	defaultWeeks = 4
	defaultHours = 2
)

type mode int

const (
	modeForm mode = iota
	modeLoading
	modePlan
)

// form fields, in focus order.
const (
	fieldWeeks = iota
	fieldHours
	fieldWeaknesses
	fieldGenerate
	fieldCount
)

// PlannerScreen collects plan parameters, runs generation, and shows the
// saved plan.
type PlannerScreen struct {
	state *appstate.State
	svc   *ai.Service
	log   *logging.Logger
	copy  func(string) error

	mode    mode
	focus   int
	weeks   components.TextInput
	hours   components.TextInput
	weak    components.TextInput
	spinner components.Spinner
	last    ai.PlanInput

	scroll int
	// width and height are the last content size reported by the app.
	width  int
	height int
	notice string
	errMsg string
}

var _ screen.Screen = (*PlannerScreen)(nil)

// New creates a PlannerScreen. It opens on the saved plan if there is one.
func New(state *appstate.State, svc *ai.Service, log *logging.Logger) *PlannerScreen {
	if log == nil {
		log = logging.Nop()
	}
	p := &PlannerScreen{
		state:   state,
		svc:     svc,
		log:     log,
		copy:    clipboard.WriteAll,
		weeks:   components.NewTextInput("1-12", true, 2),
		hours:   components.NewTextInput("1-12", true, 2),
		weak:    components.NewTextInput("e.g. I struggle with Pharmacokinetics math...", false, 200),
		spinner: components.NewSpinner(spinnerID, "Analyzing Syllabus..."),
	}
	p.weeks.SetValue(strconv.Itoa(defaultWeeks))
	p.hours.SetValue(strconv.Itoa(defaultHours))
	p.setFocus(fieldWeeks)

	if _, ok := state.Plan(); ok {
		p.mode = modePlan
	}
	return p
}

func (p *PlannerScreen) Init() tea.Cmd {
	return nil
}

// CapturesInput is true while a form field has the cursor.
func (p *PlannerScreen) CapturesInput() bool {
	return p.mode == modeForm && p.focus != fieldGenerate
}

func (p *PlannerScreen) setFocus(f int) tea.Cmd {
	p.focus = (f + fieldCount) % fieldCount
	p.weeks.Blur()
	p.hours.Blur()
	p.weak.Blur()
	switch p.focus {
	case fieldWeeks:
		return p.weeks.Focus()
	case fieldHours:
		return p.hours.Focus()
	case fieldWeaknesses:
		return p.weak.Focus()
	}
	return nil
}

func (p *PlannerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planResultMsg:
		return p, p.handleResult(msg)
	case copiedMsg:
		if msg.Err != nil {
			p.errMsg = "Could not copy to clipboard: " + msg.Err.Error()
		} else {
			p.notice = "Plan copied to clipboard."
		}
		return p, nil
	case components.SpinnerTickMsg:
		if p.mode != modeLoading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	case screen.SizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.scroll = min(p.scroll, p.maxScroll())
		return p, nil
	case tea.KeyMsg:
		switch p.mode {
		case modeForm:
			return p, p.updateForm(msg)
		case modePlan:
			return p, p.updatePlan(msg)
		}
		return p, nil
	}

	if p.mode == modeForm {
		return p, p.forwardToField(msg)
	}
	return p, nil
}

func (p *PlannerScreen) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		return p.setFocus(p.focus + 1)
	case "shift+tab", "up":
		return p.setFocus(p.focus - 1)
	case "esc":
		if _, ok := p.state.Plan(); ok {
			p.mode = modePlan
			p.errMsg = ""
		}
		return nil
	case "enter":
		if p.focus != fieldGenerate {
			return p.setFocus(p.focus + 1)
		}
		in, problem := p.input()
		if problem != "" {
			p.errMsg = problem
			return nil
		}
		return p.start(in)
	}
	return p.forwardToField(msg)
}

func (p *PlannerScreen) forwardToField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch p.focus {
	case fieldWeeks:
		p.weeks, cmd = p.weeks.Update(msg)
	case fieldHours:
		p.hours, cmd = p.hours.Update(msg)
	case fieldWeaknesses:
		p.weak, cmd = p.weak.Update(msg)
	}
	return cmd
}

func (p *PlannerScreen) updatePlan(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if p.scroll > 0 {
			p.scroll--
		}
	case "down", "j":
		if p.scroll < p.maxScroll() {
			p.scroll++
		}
	case "r":
		in := p.last
		if in.Weeks == 0 {
			var problem string
			if in, problem = p.input(); problem != "" {
				p.errMsg = problem
				return nil
			}
		}
		return p.start(in)
	case "n":
		p.mode = modeForm
		p.notice, p.errMsg = "", ""
		return p.setFocus(fieldWeeks)
	case "c":
		if err := p.state.ClearPlan(context.Background()); err != nil {
			p.errMsg = "Could not clear plan: " + err.Error()
			return nil
		}
		p.mode = modeForm
		p.scroll = 0
		p.notice, p.errMsg = "Plan cleared.", ""
		return p.setFocus(fieldWeeks)
	case "y":
		pl, ok := p.state.Plan()
		if !ok {
			return nil
		}
		text, copyFn := pl.Text(), p.copy
		return func() tea.Msg { return copiedMsg{Err: copyFn(text)} }
	}
	return nil
}

// input reads the form. The second result describes the first invalid
// field, or is empty.
func (p *PlannerScreen) input() (ai.PlanInput, string) {
	weeks, err := p.weeks.NumericValue()
	if err != nil || weeks < minWeeks || weeks > maxWeeks {
		return ai.PlanInput{}, fmt.Sprintf("Duration must be between %d and %d weeks.", minWeeks, maxWeeks)
	}
	hours, err := p.hours.NumericValue()
	if err != nil || hours < minHours || hours > maxHours {
		return ai.PlanInput{}, fmt.Sprintf("Hours per day must be between %d and %d.", minHours, maxHours)
	}
	return ai.PlanInput{
		Weeks:         weeks,
		HoursPerDay:   hours,
		WeaknessNotes: strings.TrimSpace(p.weak.Value()),
	}, ""
}

// start launches generation. Exam type and incomplete topics are read at
// the moment of the request.
func (p *PlannerScreen) start(in ai.PlanInput) tea.Cmd {
	in.ExamType = p.state.Settings().ExamType
	in.IncompleteTopics = curriculum.IncompleteTopics(p.state.Curriculum())
	p.last = in
	p.mode = modeLoading
	p.notice, p.errMsg = "", ""

	state, svc, log := p.state, p.svc, p.log
	generate := func() tea.Msg {
		ctx := context.Background()
		sp, err := svc.GenerateStudyPlan(ctx, in)
		if err != nil {
			log.Warn("plan generation failed", "weeks", in.Weeks, "error", err)
			return planResultMsg{Err: err}
		}
		if err := state.SetPlan(ctx, sp); err != nil {
			return planResultMsg{Err: err}
		}
		log.Info("plan generated", "title", sp.Title, "days", len(sp.Schedule))
		return planResultMsg{}
	}
	return tea.Batch(generate, p.spinner.Tick())
}

func (p *PlannerScreen) handleResult(msg planResultMsg) tea.Cmd {
	_, hasPlan := p.state.Plan()
	if msg.Err != nil {
		var genErr *ai.GenerationError
		if errors.As(msg.Err, &genErr) {
			p.errMsg = "Failed to generate plan. Please try again."
		} else {
			p.errMsg = "Could not save plan: " + msg.Err.Error()
		}
		if hasPlan {
			p.mode = modePlan
		} else {
			p.mode = modeForm
		}
		return nil
	}
	p.mode = modePlan
	p.scroll = 0
	p.notice = "New plan saved."
	return nil
}

func screenHead() string {
	return theme.Title.Render("Smart Planner") + "\n" +
		theme.Subtitle.Render("AI-generated revision timetables tailored to your uncompleted topics.")
}

func planHeader(sp *plan.StudyPlan) string {
	return theme.Heading.Render(sp.Title) + "\n" +
		theme.Subtitle.Render("Created: "+sp.CreatedAt.Local().Format("2 Jan 2006"))
}

// scheduleRows renders the saved schedule for a screen of the given size
// and reports how many rows of it fit below the plan header.
func scheduleRows(sp *plan.StudyPlan, width, height int) (lines []string, visible int) {
	height -= lipgloss.Height(screenHead()) + 4
	lines = renderSchedule(sp, width-6)
	visible = max(height-lipgloss.Height(planHeader(sp))-1, 3)
	return lines, visible
}

// maxScroll is the furthest the schedule can scroll at the last known size.
// Before any size is known the last row may reach the top.
func (p *PlannerScreen) maxScroll() int {
	sp, ok := p.state.Plan()
	if !ok {
		return 0
	}
	if p.height == 0 {
		return max(len(renderSchedule(sp, p.width))-1, 0)
	}
	lines, visible := scheduleRows(sp, p.width, p.height)
	return max(len(lines)-visible, 0)
}

func (p *PlannerScreen) View(width, height int) string {
	head := screenHead()

	var body string
	switch p.mode {
	case modeForm:
		body = p.viewForm(width)
	case modeLoading:
		body = "\n" + p.spinner.View()
	case modePlan:
		body = p.viewPlan(width, height)
	}

	var status string
	if p.errMsg != "" {
		status = "\n" + theme.Notice.Render(p.errMsg)
	} else if p.notice != "" {
		status = "\n" + theme.Hint.Render(p.notice)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(head + status + "\n\n" + body)
}

func (p *PlannerScreen) viewForm(width int) string {
	incomplete := len(curriculum.IncompleteTopics(p.state.Curriculum()))

	label := func(f int, text string) string {
		if p.focus == f {
			return theme.Selected.Render("▸ " + text)
		}
		return theme.Body.Render("  " + text)
	}

	var b strings.Builder
	b.WriteString(theme.Heading.Render("Create New Plan"))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf(
		"This will generate a plan prioritizing the %d topics you haven't marked as complete in your syllabus tracker.", incomplete)))
	b.WriteString("\n\n")
	b.WriteString(label(fieldWeeks, "Duration (Weeks)") + "\n    " + p.weeks.View() + "\n\n")
	b.WriteString(label(fieldHours, "Hours per Day") + "\n    " + p.hours.View() + "\n\n")
	b.WriteString(label(fieldWeaknesses, "Specific Weaknesses (Optional)") + "\n    " + p.weak.View() + "\n\n")
	b.WriteString("  " + components.NewButton("Generate Personalized Plan", p.focus == fieldGenerate, nil).View())

	return theme.Card.Width(min(width-4, 76)).Render(b.String())
}

func (p *PlannerScreen) viewPlan(width, height int) string {
	sp, ok := p.state.Plan()
	if !ok {
		return theme.Hint.Render("No plan saved.")
	}

	lines, visible := scheduleRows(sp, width, height)
	top := min(p.scroll, max(len(lines)-visible, 0))
	end := min(top+visible, len(lines))

	return planHeader(sp) + "\n\n" + strings.Join(lines[top:end], "\n")
}

func renderSchedule(sp *plan.StudyPlan, width int) []string {
	dayStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	var lines []string
	for _, d := range sp.Schedule {
		line := dayStyle.Render("▪ " + d.Day)
		if d.Notes != "" {
			line += "  " + theme.Hint.Render(d.Notes)
		}
		lines = append(lines, line)
		for _, s := range d.Sessions {
			topic := theme.Body.Render("   " + s.Topic)
			dur := lipgloss.NewStyle().Foreground(theme.Primary).Render(s.Duration)
			gap := max(width-lipgloss.Width(topic)-lipgloss.Width(dur), 1)
			lines = append(lines, topic+strings.Repeat(" ", gap)+dur)
			lines = append(lines, theme.Subtitle.Render("     ["+s.Method+"] ")+theme.Hint.Render("Focus: "+s.Focus))
		}
		lines = append(lines, "")
	}
	return lines
}

func (p *PlannerScreen) Title() string {
	return view.Planner.Label()
}

func (p *PlannerScreen) KeyHints() []layout.KeyHint {
	switch p.mode {
	case modeForm:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back to plan"},
		}
	case modePlan:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "r", Description: "Regenerate"},
			{Key: "n", Description: "New plan"},
			{Key: "c", Description: "Clear"},
			{Key: "y", Description: "Copy"},
		}
	}
	return nil
}
