package curriculum

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mastermind/internal/appstate"
	"github.com/abhisek/mastermind/internal/store"
)

func newState(t *testing.T) *appstate.State {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:curriculumscreen_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	s, err := appstate.Open(t.Context(), st.SlotRepo(), appstate.Options{})
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	return s
}

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

var space = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}

func TestCurriculum_StartsOnFirstTopic(t *testing.T) {
	s := New(newState(t))
	r := s.rows[s.cursor]
	if r.kind != rowTopic || r.topicID != "p1" {
		t.Fatalf("cursor on %+v, want topic p1", r)
	}
	v := s.View(100, 40)
	if !strings.Contains(v, "Primary FRCA Syllabus") {
		t.Error("expected exam title")
	}
	if !strings.Contains(v, "0 / 7 Done") {
		t.Error("expected physiology header count")
	}
}

func TestCurriculum_ToggleTopicPersists(t *testing.T) {
	state := newState(t)
	s := New(state)

	s.Update(space)
	if !state.Curriculum()[0].Topics[0].Completed {
		t.Fatal("p1 should be completed in state")
	}
	if !strings.Contains(s.View(100, 40), "1 / 7 Done") {
		t.Error("header should count the completed topic")
	}

	s.Update(key('x'))
	if state.Curriculum()[0].Topics[0].Completed {
		t.Error("second toggle should clear p1")
	}
}

func TestCurriculum_SubtopicNotCountedInHeader(t *testing.T) {
	state := newState(t)
	s := New(state)

	s.Update(key('j')) // p2
	s.Update(key('j')) // p2a
	if r := s.rows[s.cursor]; r.subtopicID != "p2a" {
		t.Fatalf("cursor on %+v, want p2a", r)
	}
	s.Update(space)

	if !state.Curriculum()[0].Topics[1].Subtopics[0].Completed {
		t.Fatal("p2a should be completed")
	}
	if !strings.Contains(s.View(100, 40), "0 / 7 Done") {
		t.Error("subtopics are not counted in the section header")
	}
	if state.Stats().Completed != 1 {
		t.Errorf("overall completed = %d, want 1", state.Stats().Completed)
	}
}

func TestCurriculum_NavigationSkipsSections(t *testing.T) {
	s := New(newState(t))

	s.Update(key('k'))
	if s.rows[s.cursor].topicID != "p1" {
		t.Error("up from the first topic should stay put")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	r := s.rows[s.cursor]
	if r.sectionID != "pharm" || r.kind != rowTopic {
		t.Fatalf("tab landed on %+v, want first pharm topic", r)
	}

	s.Update(key('G'))
	r = s.rows[s.cursor]
	if r.sectionID != "icm" || r.kind == rowSection {
		t.Fatalf("end landed on %+v", r)
	}
	s.Update(key('j'))
	if s.rows[s.cursor] != r {
		t.Error("down from the last row should stay put")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.rows[s.cursor].topicID != "p1" {
		t.Error("tab from the last section should wrap to the first topic")
	}

	for i := range s.rows {
		s.cursor = i
		s.Update(key('j'))
		if s.rows[s.cursor].kind == rowSection {
			t.Fatalf("cursor stopped on section row %d", s.cursor)
		}
	}
}

func TestCurriculum_ScrollKeepsCursorVisible(t *testing.T) {
	s := New(newState(t))
	s.Update(key('G'))
	v := s.View(100, 20)
	last := s.rows[s.cursor].title
	if !strings.Contains(v, last) {
		t.Errorf("last row %q not visible", last)
	}
	if s.offset == 0 {
		t.Error("expected the list to scroll")
	}
}

func TestCurriculum_SaveErrorShown(t *testing.T) {
	s := New(newState(t))
	s.err = errors.New("disk full")
	if !strings.Contains(s.View(100, 40), "Could not save: disk full") {
		t.Error("expected save error notice")
	}
}
