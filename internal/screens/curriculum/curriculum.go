package curriculum

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mastermind/internal/appstate"
	syllabus "github.com/abhisek/mastermind/internal/curriculum"
	"github.com/abhisek/mastermind/internal/screen"
	"github.com/abhisek/mastermind/internal/ui/layout"
	"github.com/abhisek/mastermind/internal/ui/theme"
	"github.com/abhisek/mastermind/internal/view"
)

type rowKind int

const (
	rowSection rowKind = iota
	rowTopic
	rowSubtopic
)

// row is one line of the flattened tree.
type row struct {
	kind       rowKind
	sectionID  string
	topicID    string
	subtopicID string
	title      string
	completed  bool
	done       int // section rows only
	total      int // section rows only
}

func (r row) toggleable() bool {
	return r.kind != rowSection
}

// CurriculumScreen is the syllabus tracker: every section, topic and
// subtopic with a checkbox.
type CurriculumScreen struct {
	state  *appstate.State
	rows   []row
	cursor int
	offset int
	err    error
}

var _ screen.Screen = (*CurriculumScreen)(nil)

// New creates a CurriculumScreen with the cursor on the first topic.
func New(state *appstate.State) *CurriculumScreen {
	s := &CurriculumScreen{state: state}
	s.reload()
	s.cursor = s.next(-1, 1)
	return s
}

func (s *CurriculumScreen) reload() {
	s.rows = flatten(s.state.Curriculum())
}

// flatten lays out the tree in display order. Section counts cover topics
// only; subtopics are tracked but not counted in the header.
func flatten(c syllabus.Curriculum) []row {
	var rows []row
	for _, sec := range c {
		done := 0
		for _, t := range sec.Topics {
			if t.Completed {
				done++
			}
		}
		rows = append(rows, row{kind: rowSection, sectionID: sec.ID, title: sec.Title, done: done, total: len(sec.Topics)})
		for _, t := range sec.Topics {
			rows = append(rows, row{kind: rowTopic, sectionID: sec.ID, topicID: t.ID, title: t.Title, completed: t.Completed})
			for _, st := range t.Subtopics {
				rows = append(rows, row{kind: rowSubtopic, sectionID: sec.ID, topicID: t.ID, subtopicID: st.ID, title: st.Title, completed: st.Completed})
			}
		}
	}
	return rows
}

// next returns the next toggleable row from i in direction dir, or i if
// there is none.
func (s *CurriculumScreen) next(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(s.rows); j += dir {
		if s.rows[j].toggleable() {
			return j
		}
	}
	if i < 0 {
		return 0
	}
	return i
}

func (s *CurriculumScreen) Init() tea.Cmd {
	return nil
}

func (s *CurriculumScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		s.cursor = s.next(s.cursor, -1)
	case "down", "j":
		s.cursor = s.next(s.cursor, 1)
	case "pgdown":
		for range 10 {
			s.cursor = s.next(s.cursor, 1)
		}
	case "pgup":
		for range 10 {
			s.cursor = s.next(s.cursor, -1)
		}
	case "home", "g":
		s.cursor = s.next(-1, 1)
	case "end", "G":
		s.cursor = s.next(len(s.rows), -1)
	case "tab":
		s.cursor = s.nextSection()
	case "space", " ", "enter", "x":
		s.toggle()
	}
	return s, nil
}

// nextSection jumps to the first topic of the following section, wrapping.
func (s *CurriculumScreen) nextSection() int {
	for j := s.cursor + 1; j < len(s.rows); j++ {
		if s.rows[j].kind == rowSection {
			return s.next(j, 1)
		}
	}
	return s.next(-1, 1)
}

func (s *CurriculumScreen) toggle() {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return
	}
	r := s.rows[s.cursor]
	if !r.toggleable() {
		return
	}
	_, err := s.state.ToggleTopic(context.Background(), r.sectionID, r.topicID, r.subtopicID)
	s.err = err
	s.reload()
}

func (s *CurriculumScreen) View(width, height int) string {
	us := s.state.Settings()
	head := theme.Title.Render(us.ExamType.Label()+" Syllabus") + "\n" +
		theme.Subtitle.Render("Track your coverage of the curriculum.")
	if s.err != nil {
		head += "\n" + theme.Notice.Render("Could not save: "+s.err.Error())
	}

	listHeight := height - lipgloss.Height(head) - 3
	if listHeight < 3 {
		listHeight = 3
	}
	s.scrollTo(listHeight)

	var lines []string
	end := min(s.offset+listHeight, len(s.rows))
	for i := s.offset; i < end; i++ {
		lines = append(lines, s.renderRow(s.rows[i], i == s.cursor, width-4))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(head + "\n\n" + strings.Join(lines, "\n"))
}

// scrollTo keeps the cursor inside the visible window.
func (s *CurriculumScreen) scrollTo(visible int) {
	if s.cursor < s.offset {
		s.offset = s.cursor
		// Keep the section header in view when scrolling up onto its first topic.
		if s.offset > 0 && s.rows[s.offset-1].kind == rowSection {
			s.offset--
		}
	}
	if s.cursor >= s.offset+visible {
		s.offset = s.cursor - visible + 1
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s *CurriculumScreen) renderRow(r row, selected bool, width int) string {
	if r.kind == rowSection {
		badge := lipgloss.NewStyle().Foreground(theme.Primary).Render(fmt.Sprintf("%d / %d Done", r.done, r.total))
		title := theme.Heading.Render("■ " + r.title)
		gap := max(width-lipgloss.Width(title)-lipgloss.Width(badge), 1)
		return title + strings.Repeat(" ", gap) + badge
	}

	box := "○"
	if r.completed {
		box = "●"
	}
	indent := "  "
	if r.kind == rowSubtopic {
		indent = "      │ "
	}

	label := r.title
	style := theme.Unselected
	if r.completed {
		style = theme.Done
	}
	if selected {
		return theme.Selected.Render("▸") + indent[1:] + theme.Selected.Render(box+" ") + style.Bold(true).Render(label)
	}
	boxStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if r.completed {
		boxStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	}
	return indent + boxStyle.Render(box+" ") + style.Render(label)
}

func (s *CurriculumScreen) Title() string {
	return view.Curriculum.Label()
}

func (s *CurriculumScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Tab", Description: "Next section"},
		{Key: "1-6", Description: "Views"},
	}
}
