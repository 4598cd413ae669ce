// Package plan defines the AI-generated revision timetable.
package plan

import "time"

// StudyPlan is either absent or complete. It is never partially built.
type StudyPlan struct {
	Title     string     `json:"title"`
	Schedule  []StudyDay `json:"schedule"`
	CreatedAt time.Time  `json:"createdAt"`
}

// StudyDay is one entry of the timetable. Day is free text from the model,
// typically "Week 1 - Monday".
type StudyDay struct {
	Day      string         `json:"day"`
	Sessions []StudySession `json:"sessions"`
	Notes    string         `json:"notes"`
}

// StudySession is a block of revision within a day.
type StudySession struct {
	Topic    string `json:"topic"`
	Duration string `json:"duration"`
	Method   string `json:"method"`
	Focus    string `json:"focus"`
}

// TotalSessions counts sessions across the whole schedule.
func (p *StudyPlan) TotalSessions() int {
	n := 0
	for _, d := range p.Schedule {
		n += len(d.Sessions)
	}
	return n
}
