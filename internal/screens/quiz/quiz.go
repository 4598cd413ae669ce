package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/mastermind/internal/ai"
	"github.com/abhisek/mastermind/internal/appstate"
	"github.com/abhisek/mastermind/internal/logging"
	sba "github.com/abhisek/mastermind/internal/quiz"
	"github.com/abhisek/mastermind/internal/screen"
	"github.com/abhisek/mastermind/internal/ui/components"
	"github.com/abhisek/mastermind/internal/ui/layout"
	"github.com/abhisek/mastermind/internal/ui/theme"
	"github.com/abhisek/mastermind/internal/view"
)

const spinnerID = 2

// questionsMsg carries a generation result back to the screen that asked
// for it. Results for any other attempt are dropped.
type questionsMsg struct {
	AttemptID string
	Questions []sba.Question
	Err       error
}

// QuizScreen runs SBA practice: topic entry, generation, one question at a
// time with the explanation after each answer, then the score.
type QuizScreen struct {
	state *appstate.State
	svc   *ai.Service
	log   *logging.Logger

	session   sba.Session
	attemptID string
	topic     components.TextInput
	choice    components.MultiChoice
	spinner   components.Spinner
}

var _ screen.Screen = (*QuizScreen)(nil)

// New creates a QuizScreen at topic entry.
func New(state *appstate.State, svc *ai.Service, log *logging.Logger) *QuizScreen {
	if log == nil {
		log = logging.Nop()
	}
	return &QuizScreen{
		state:   state,
		svc:     svc,
		log:     log,
		topic:   components.NewTextInput("e.g. 'Propofol Pharmacology' or 'Sepsis Guidelines'", false, 120),
		spinner: components.NewSpinner(spinnerID, ""),
	}
}

func (q *QuizScreen) Init() tea.Cmd {
	return q.topic.Init()
}

// CapturesInput is true while typing a topic and while answering, when
// the number keys pick options.
func (q *QuizScreen) CapturesInput() bool {
	switch q.session.State() {
	case sba.StateIdle:
		return q.topic.Focused()
	case sba.StateInProgress:
		return true
	}
	return false
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsMsg:
		q.receive(msg)
		return q, nil
	case components.SpinnerTickMsg:
		if q.session.State() != sba.StateLoading {
			return q, nil
		}
		var cmd tea.Cmd
		q.spinner, cmd = q.spinner.Update(msg)
		return q, cmd
	case tea.KeyMsg:
		return q, q.handleKey(msg)
	}

	if q.session.State() == sba.StateIdle {
		var cmd tea.Cmd
		q.topic, cmd = q.topic.Update(msg)
		return q, cmd
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch q.session.State() {
	case sba.StateIdle:
		if !q.topic.Focused() {
			if k := msg.String(); k == "enter" || k == "i" {
				return q.topic.Focus()
			}
			return nil
		}
		switch msg.String() {
		case "enter":
			return q.start()
		case "esc":
			q.topic.Blur()
			return nil
		}
		var cmd tea.Cmd
		q.topic, cmd = q.topic.Update(msg)
		return cmd

	case sba.StateInProgress:
		q.choice, _ = q.choice.Update(msg)
		if q.choice.Submitted {
			q.session.Select(q.choice.ChosenIndex)
		}

	case sba.StateAnswered:
		switch msg.String() {
		case "enter", "n", "space", " ", "right":
			if q.session.Next() {
				q.loadChoice()
			}
		}

	case sba.StateFinished:
		switch msg.String() {
		case "enter", "n":
			q.session.NewTopic()
			q.topic.SetValue("")
			return q.topic.Focus()
		}
	}
	return nil
}

// start requests questions for the typed topic. Empty topics are ignored.
func (q *QuizScreen) start() tea.Cmd {
	topic := strings.TrimSpace(q.topic.Value())
	if !q.session.Start(topic) {
		return nil
	}

	exam := q.state.Settings().ExamType
	q.attemptID = uuid.NewString()
	q.spinner.Label = fmt.Sprintf("Generating %s SBA Questions...", exam.Label())
	q.topic.Blur()

	id, svc, log := q.attemptID, q.svc, q.log
	generate := func() tea.Msg {
		qs, err := svc.GenerateQuiz(context.Background(), topic, exam)
		if err != nil {
			log.Warn("quiz generation failed", "topic", topic, "error", err)
		}
		return questionsMsg{AttemptID: id, Questions: qs, Err: err}
	}
	return tea.Batch(generate, q.spinner.Tick())
}

func (q *QuizScreen) receive(msg questionsMsg) {
	if msg.AttemptID != q.attemptID || q.session.State() != sba.StateLoading {
		return
	}
	if msg.Err != nil {
		q.session.Failed(msg.Err)
	} else {
		q.session.Loaded(msg.Questions)
	}
	if q.session.State() == sba.StateIdle {
		q.topic.Focus()
		return
	}
	q.loadChoice()
}

func (q *QuizScreen) loadChoice() {
	cur, ok := q.session.Current()
	if !ok {
		return
	}
	q.choice = components.NewMultiChoice(cur.Question, cur.Options, cur.CorrectIndex)
}

func (q *QuizScreen) View(width, height int) string {
	cw := min(width-4, 90)
	var body string
	switch q.session.State() {
	case sba.StateIdle:
		body = q.viewTopic(cw)
	case sba.StateLoading:
		body = "\n\n" + q.spinner.View()
	case sba.StateInProgress, sba.StateAnswered:
		body = q.viewQuestion(cw)
	case sba.StateFinished:
		body = q.viewResult(cw)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (q *QuizScreen) viewTopic(width int) string {
	exam := q.state.Settings().ExamType.Label()
	var b strings.Builder
	b.WriteString(theme.Title.Render("Practice SBA"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
		"Enter a topic to generate %d high-yield Single Best Answer questions tailored for ", q.svc.Config().QuizLength)))
	b.WriteString(theme.Heading.Render(exam))
	b.WriteString(theme.Subtitle.Render("."))
	b.WriteString("\n\n")
	b.WriteString(q.topic.View())
	if err := q.session.Err(); err != nil {
		b.WriteString("\n\n")
		b.WriteString(theme.Notice.Render("Error generating quiz. Try again."))
	}
	return theme.Card.Width(width).Render(b.String())
}

func (q *QuizScreen) viewQuestion(width int) string {
	cur, _ := q.session.Current()

	progress := theme.Subtitle.Render(fmt.Sprintf("QUESTION %d OF %d", q.session.Index()+1, q.session.Len()))
	domain := lipgloss.NewStyle().Foreground(theme.Primary).Render(cur.Domain)
	gap := max(width-lipgloss.Width(progress)-lipgloss.Width(domain), 1)
	top := progress + strings.Repeat(" ", gap) + domain

	card := theme.Card.Width(width).Render(lipgloss.NewStyle().Width(width - 6).Render(q.choice.View()))
	parts := []string{top, card}

	if q.session.ExplanationShown() {
		sel, _ := q.session.Selected()
		verdict := theme.Correct.Render("Correct!")
		if !cur.IsCorrect(sel) {
			verdict = theme.Incorrect.Render("Incorrect. The answer is " + sba.OptionLetter(cur.CorrectIndex) + ".")
		}
		expl := verdict + "\n\n" + theme.Heading.Render("Explanation") + "\n" +
			lipgloss.NewStyle().Width(width-6).Foreground(theme.Text).Render(cur.Explanation)
		parts = append(parts, theme.Callout.Width(width).Render(expl))

		next := "Next Question"
		if q.session.IsLast() {
			next = "Finish Quiz"
		}
		parts = append(parts, components.NewButton(next, true, nil).View())
	}
	return strings.Join(parts, "\n\n")
}

func (q *QuizScreen) viewResult(width int) string {
	score, total, _ := q.session.Result()
	body := theme.Title.Render("Quiz Complete!") + "\n\n" +
		theme.Subtitle.Render("You scored") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("%d / %d", score, total)) + "\n\n" +
		components.NewButton("New Topic", true, nil).View()
	return theme.Card.Width(width).Align(lipgloss.Center).Render(body)
}

func (q *QuizScreen) Title() string {
	return view.Quiz.Label()
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch q.session.State() {
	case sba.StateIdle:
		if !q.topic.Focused() {
			return []layout.KeyHint{{Key: "i", Description: "Edit topic"}, {Key: "1-6", Description: "Views"}}
		}
		return []layout.KeyHint{{Key: "Enter", Description: "Start"}, {Key: "Esc", Description: "Leave field"}}
	case sba.StateInProgress:
		return []layout.KeyHint{{Key: "A-E / 1-5", Description: "Answer"}, {Key: "↑↓ Enter", Description: "Pick"}}
	case sba.StateAnswered:
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}, {Key: "1-6", Description: "Views"}}
	case sba.StateFinished:
		return []layout.KeyHint{{Key: "Enter", Description: "New topic"}, {Key: "1-6", Description: "Views"}}
	}
	return nil
}
