package quiz

import (
	"errors"
	"strings"
)

// State is the phase of a quiz session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateInProgress
	StateAnswered
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateInProgress:
		return "in-progress"
	case StateAnswered:
		return "answered"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ErrNoQuestions is recorded when generation succeeds but yields nothing.
var ErrNoQuestions = errors.New("no questions were generated")

// Session is the quiz state machine. The zero value is an idle session.
//
//	Idle --Start--> Loading --Loaded--> InProgress --Select--> Answered
//	Answered --Next--> InProgress | Finished
//	Loading --Failed--> Idle
//	Finished --NewTopic--> Idle
//
// Calls that do not apply to the current state are ignored and report false.
type Session struct {
	state     State
	topic     string
	questions []Question
	index     int
	score     int
	selected  int
	err       error
}

// Start moves Idle to Loading. An empty topic is rejected.
func (s *Session) Start(topic string) bool {
	topic = strings.TrimSpace(topic)
	if s.state != StateIdle || topic == "" {
		return false
	}
	s.state = StateLoading
	s.topic = topic
	s.questions = nil
	s.index = 0
	s.score = 0
	s.selected = -1
	s.err = nil
	return true
}

// Loaded delivers generated questions to a Loading session.
func (s *Session) Loaded(questions []Question) bool {
	if s.state != StateLoading {
		return false
	}
	// A question with no options can never be answered.
	answerable := make([]Question, 0, len(questions))
	for _, q := range questions {
		if len(q.Options) > 0 {
			answerable = append(answerable, q)
		}
	}
	if len(answerable) == 0 {
		return s.Failed(ErrNoQuestions)
	}
	s.questions = answerable
	s.index = 0
	s.score = 0
	s.selected = -1
	s.state = StateInProgress
	return true
}

// Failed returns a Loading session to Idle and keeps err for display.
func (s *Session) Failed(err error) bool {
	if s.state != StateLoading {
		return false
	}
	s.state = StateIdle
	s.questions = nil
	s.err = err
	return true
}

// Select answers the current question. Answers are final: a second Select on
// the same question is ignored, as is an index outside the options.
func (s *Session) Select(i int) bool {
	if s.state != StateInProgress {
		return false
	}
	q := s.questions[s.index]
	if i < 0 || i >= len(q.Options) {
		return false
	}
	s.selected = i
	if q.IsCorrect(i) {
		s.score++
	}
	s.state = StateAnswered
	return true
}

// Next advances past an answered question, finishing after the last one.
func (s *Session) Next() bool {
	if s.state != StateAnswered {
		return false
	}
	if s.index < len(s.questions)-1 {
		s.index++
		s.selected = -1
		s.state = StateInProgress
		return true
	}
	s.state = StateFinished
	return true
}

// NewTopic drops the finished session and returns to topic entry.
func (s *Session) NewTopic() bool {
	if s.state != StateFinished {
		return false
	}
	*s = Session{}
	return true
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Topic returns the topic of the current or last attempted session.
func (s *Session) Topic() string { return s.topic }

// Err returns the reason the last load failed, if any.
func (s *Session) Err() error { return s.err }

// Index is the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Len is the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// Score is the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// Current returns the question being shown.
func (s *Session) Current() (Question, bool) {
	if s.state != StateInProgress && s.state != StateAnswered {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Selected returns the chosen option for the current question.
func (s *Session) Selected() (int, bool) {
	if s.state != StateAnswered {
		return 0, false
	}
	return s.selected, true
}

// ExplanationShown is true once the current question has been answered.
func (s *Session) ExplanationShown() bool {
	return s.state == StateAnswered
}

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool {
	return len(s.questions) > 0 && s.index == len(s.questions)-1
}

// Result returns the final score. ok is false until the session finishes.
func (s *Session) Result() (score, total int, ok bool) {
	if s.state != StateFinished {
		return 0, 0, false
	}
	return s.score, len(s.questions), true
}
