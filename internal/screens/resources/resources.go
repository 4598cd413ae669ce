package resources

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"github.com/abhisek/mastermind/internal/logging"
	library "github.com/abhisek/mastermind/internal/resources"
	"github.com/abhisek/mastermind/internal/screen"
	"github.com/abhisek/mastermind/internal/ui/layout"
	"github.com/abhisek/mastermind/internal/ui/theme"
	"github.com/abhisek/mastermind/internal/view"
)

type openedMsg struct {
	Title string
	Err   error
}

type copiedMsg struct {
	Title string
	Err   error
}

// ResourcesScreen lists the revision library and opens entries in the
// system browser.
type ResourcesScreen struct {
	items  []library.Resource
	open   library.Opener
	copy   func(string) error
	log    *logging.Logger
	cursor int
	notice string
}

var _ screen.Screen = (*ResourcesScreen)(nil)

// New creates a ResourcesScreen. A nil opener uses the system browser.
func New(items []library.Resource, open library.Opener, log *logging.Logger) *ResourcesScreen {
	if open == nil {
		open = library.OpenInBrowser
	}
	if log == nil {
		log = logging.Nop()
	}
	return &ResourcesScreen{
		items: items,
		open:  open,
		copy:  clipboard.WriteAll,
		log:   log,
	}
}

func (r *ResourcesScreen) Init() tea.Cmd {
	return nil
}

func (r *ResourcesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case openedMsg:
		if msg.Err != nil {
			r.log.Warn("open resource failed", "title", msg.Title, "error", msg.Err)
			r.notice = fmt.Sprintf("Could not open %s: %v", msg.Title, msg.Err)
		} else {
			r.notice = "Opened " + msg.Title + " in your browser."
		}
	case copiedMsg:
		if msg.Err != nil {
			r.notice = "Clipboard unavailable: " + msg.Err.Error()
		} else {
			r.notice = "Copied link for " + msg.Title + "."
		}
	case tea.KeyMsg:
		return r, r.handleKey(msg)
	}
	return r, nil
}

func (r *ResourcesScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if len(r.items) == 0 {
		return nil
	}
	switch msg.String() {
	case "up", "k":
		if r.cursor > 0 {
			r.cursor--
		}
	case "down", "j":
		if r.cursor < len(r.items)-1 {
			r.cursor++
		}
	case "home", "g":
		r.cursor = 0
	case "end", "G":
		r.cursor = len(r.items) - 1
	case "enter", "o":
		return r.openSelected()
	case "y":
		return r.copySelected()
	}
	return nil
}

func (r *ResourcesScreen) openSelected() tea.Cmd {
	item := r.items[r.cursor]
	if !item.Openable() {
		r.notice = item.Title + " has no link yet."
		return nil
	}
	r.notice = ""
	open := r.open
	return func() tea.Msg {
		return openedMsg{Title: item.Title, Err: open(context.Background(), item.URL)}
	}
}

func (r *ResourcesScreen) copySelected() tea.Cmd {
	item := r.items[r.cursor]
	if !item.Openable() {
		r.notice = item.Title + " has no link yet."
		return nil
	}
	write := r.copy
	return func() tea.Msg {
		return copiedMsg{Title: item.Title, Err: write(item.URL)}
	}
}

func (r *ResourcesScreen) View(width, height int) string {
	cw := min(width-4, 90)
	var b strings.Builder
	b.WriteString(theme.Title.Render("Resource Library"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Curated links for revision."))
	b.WriteString("\n\n")

	if len(r.items) == 0 {
		b.WriteString(theme.Hint.Render("No resources configured."))
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}

	for i, item := range r.items {
		title := theme.Unselected.Render(item.Title)
		marker := "  "
		if i == r.cursor {
			title = theme.Selected.Render(item.Title)
			marker = theme.Selected.Render("▸ ")
		}
		kind := theme.Hint.Render(strings.ToUpper(string(item.Kind)))
		line := marker + item.Icon() + "  " + title
		gap := max(cw-lipgloss.Width(line)-lipgloss.Width(kind), 1)
		b.WriteString(line + strings.Repeat(" ", gap) + kind + "\n")
		if i == r.cursor {
			link := item.URL
			if !item.Openable() {
				link = "(no link)"
			}
			b.WriteString("     " + theme.Hint.Render(link) + "\n")
		}
	}

	if r.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Notice.Render(r.notice))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (r *ResourcesScreen) Title() string {
	return view.Resources.Label()
}

func (r *ResourcesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Open"},
		{Key: "y", Description: "Copy link"},
	}
}
