package resources

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	library "github.com/abhisek/mastermind/internal/resources"
)

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

type recorder struct {
	urls []string
	err  error
}

func (r *recorder) open(_ context.Context, url string) error {
	r.urls = append(r.urls, url)
	return r.err
}

func TestResources_OpensSelected(t *testing.T) {
	rec := &recorder{}
	s := New(library.Builtin(), rec.open, nil)

	s.Update(key('j'))
	_, cmd := s.Update(enter)
	if cmd == nil {
		t.Fatal("expected an open command")
	}
	s.Update(cmd())

	if len(rec.urls) != 1 || rec.urls[0] != library.Builtin()[1].URL {
		t.Fatalf("opened %v", rec.urls)
	}
	if !strings.Contains(s.View(100, 30), "Opened RCoA 2024 Curriculum Guide") {
		t.Error("expected confirmation notice")
	}
}

func TestResources_PlaceholderLinkNotOpened(t *testing.T) {
	rec := &recorder{}
	s := New(library.Builtin(), rec.open, nil)

	s.Update(key('G'))
	_, cmd := s.Update(enter)
	if cmd != nil {
		t.Error("placeholder link should not produce a command")
	}
	if len(rec.urls) != 0 {
		t.Errorf("opened %v", rec.urls)
	}
	if !strings.Contains(s.View(100, 30), "Propofolology has no link yet.") {
		t.Error("expected no-link notice")
	}
}

func TestResources_OpenFailureShown(t *testing.T) {
	rec := &recorder{err: errors.New("no browser")}
	s := New(library.Builtin(), rec.open, nil)

	_, cmd := s.Update(key('o'))
	s.Update(cmd())
	if !strings.Contains(s.View(100, 30), "no browser") {
		t.Error("expected failure notice")
	}
}

func TestResources_CursorBounds(t *testing.T) {
	s := New(library.Builtin(), (&recorder{}).open, nil)

	s.Update(key('k'))
	if s.cursor != 0 {
		t.Errorf("cursor = %d, want 0", s.cursor)
	}
	for range 10 {
		s.Update(key('j'))
	}
	if s.cursor != len(library.Builtin())-1 {
		t.Errorf("cursor = %d, want last", s.cursor)
	}
}

func TestResources_CopyLink(t *testing.T) {
	s := New(library.Builtin(), (&recorder{}).open, nil)
	var copied string
	s.copy = func(v string) error { copied = v; return nil }

	_, cmd := s.Update(key('y'))
	s.Update(cmd())
	if copied != library.Builtin()[0].URL {
		t.Errorf("copied %q", copied)
	}
	if !strings.Contains(s.View(100, 30), "Copied link") {
		t.Error("expected copy notice")
	}
}

func TestResources_ListsExtras(t *testing.T) {
	items := library.Library([]library.Resource{{Title: "Oxford Handbook", Kind: library.KindBook, URL: "https://example.org/ohb"}})
	s := New(items, (&recorder{}).open, nil)
	v := s.View(100, 30)
	if !strings.Contains(v, "Oxford Handbook") || !strings.Contains(v, "BOOK") {
		t.Errorf("extra resource missing: %q", v)
	}
}

func TestResources_Empty(t *testing.T) {
	s := New(nil, (&recorder{}).open, nil)
	if _, cmd := s.Update(enter); cmd != nil {
		t.Error("empty list should ignore enter")
	}
	if !strings.Contains(s.View(80, 20), "No resources configured.") {
		t.Error("expected empty message")
	}
}
