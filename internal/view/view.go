// Package view enumerates the top-level views of the TUI.
package view

import tea "charm.land/bubbletea/v2"

// ID identifies one of the six views. The zero value is Dashboard.
type ID int

const (
	Dashboard ID = iota
	Curriculum
	Planner
	Quiz
	Resources
	Settings
)

// All returns every view in sidebar order.
func All() []ID {
	return []ID{Dashboard, Curriculum, Planner, Quiz, Resources, Settings}
}

// Label is the sidebar and header text.
func (id ID) Label() string {
	switch id {
	case Dashboard:
		return "Dashboard"
	case Curriculum:
		return "Curriculum"
	case Planner:
		return "Smart Planner"
	case Quiz:
		return "SBA Quiz"
	case Resources:
		return "Resources"
	case Settings:
		return "Settings"
	}
	return "Unknown"
}

// Valid reports whether id is one of the six views.
func (id ID) Valid() bool {
	return id >= Dashboard && id <= Settings
}

// FromKey maps the number keys "1".."6" to views.
func FromKey(key string) (ID, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '6' {
		return 0, false
	}
	return ID(key[0] - '1'), true
}

// SwitchMsg asks the app to make ID the active view.
type SwitchMsg struct {
	ID ID
}

// Switch returns a command that emits SwitchMsg.
func Switch(id ID) tea.Cmd {
	return func() tea.Msg { return SwitchMsg{ID: id} }
}
