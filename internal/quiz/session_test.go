package quiz

import (
	"errors"
	"fmt"
	"testing"
)

func fiveQuestions() []Question {
	qs := make([]Question, 5)
	for i := range qs {
		qs[i] = Question{
			ID:           fmt.Sprintf("q%d", i+1),
			Question:     fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"a", "b", "c", "d", "e"},
			CorrectIndex: i % 5,
			Explanation:  "because",
			Domain:       "Pharmacology",
		}
	}
	return qs
}

func started(t *testing.T) *Session {
	t.Helper()
	var s Session
	if !s.Start("Propofol") {
		t.Fatal("Start rejected a valid topic")
	}
	if !s.Loaded(fiveQuestions()) {
		t.Fatal("Loaded rejected questions")
	}
	return &s
}

func TestStart_RequiresTopic(t *testing.T) {
	for _, topic := range []string{"", "   ", "\t\n"} {
		var s Session
		if s.Start(topic) {
			t.Errorf("Start(%q) accepted", topic)
		}
		if s.State() != StateIdle {
			t.Errorf("Start(%q) left state %v", topic, s.State())
		}
	}

	var s Session
	if !s.Start("  Opioids ") {
		t.Fatal("Start rejected topic")
	}
	if s.State() != StateLoading || s.Topic() != "Opioids" {
		t.Errorf("state=%v topic=%q", s.State(), s.Topic())
	}
	if s.Start("again") {
		t.Error("Start accepted while loading")
	}
}

func TestLoaded_StartsAtFirstQuestion(t *testing.T) {
	s := started(t)
	if s.State() != StateInProgress {
		t.Fatalf("state = %v, want in-progress", s.State())
	}
	if s.Index() != 0 || s.Score() != 0 || s.Len() != 5 {
		t.Errorf("index=%d score=%d len=%d", s.Index(), s.Score(), s.Len())
	}
	q, ok := s.Current()
	if !ok || q.ID != "q1" {
		t.Errorf("current = %+v ok=%v", q, ok)
	}
	if s.ExplanationShown() {
		t.Error("explanation shown before answering")
	}
}

func TestFailed_ReturnsToIdle(t *testing.T) {
	var s Session
	s.Start("Sepsis")
	boom := errors.New("boom")
	if !s.Failed(boom) {
		t.Fatal("Failed rejected")
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle", s.State())
	}
	if !errors.Is(s.Err(), boom) {
		t.Errorf("err = %v", s.Err())
	}
	if !s.Start("Sepsis") {
		t.Error("cannot restart after failure")
	}
	if s.Err() != nil {
		t.Error("restart did not clear previous error")
	}
}

func TestLoaded_EmptyIsFailure(t *testing.T) {
	var s Session
	s.Start("Sepsis")
	s.Loaded(nil)
	if s.State() != StateIdle || !errors.Is(s.Err(), ErrNoQuestions) {
		t.Errorf("state=%v err=%v", s.State(), s.Err())
	}
}

func TestLoaded_DropsQuestionsWithoutOptions(t *testing.T) {
	qs := fiveQuestions()
	qs[1].Options = nil
	qs[3].Options = []string{}

	var s Session
	s.Start("Sepsis")
	if !s.Loaded(qs) {
		t.Fatal("Loaded rejected questions")
	}
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	for i := 0; i < s.Len(); i++ {
		q, _ := s.Current()
		if len(q.Options) == 0 {
			t.Fatalf("question %s has no options", q.ID)
		}
		if !s.Select(0) {
			t.Fatalf("Select rejected on %s", q.ID)
		}
		s.Next()
	}
	if s.State() != StateFinished {
		t.Errorf("state = %v, want finished", s.State())
	}
}

func TestLoaded_AllWithoutOptionsIsFailure(t *testing.T) {
	var s Session
	s.Start("Sepsis")
	s.Loaded([]Question{{ID: "q1", Question: "Empty?"}, {ID: "q2", Options: []string{}}})
	if s.State() != StateIdle || !errors.Is(s.Err(), ErrNoQuestions) {
		t.Errorf("state=%v err=%v", s.State(), s.Err())
	}
	if !s.Start("Sepsis") {
		t.Error("cannot restart after dropping every question")
	}
}

func TestSelect_CorrectIncrementsOnce(t *testing.T) {
	s := started(t)
	if !s.Select(0) {
		t.Fatal("Select rejected")
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1", s.Score())
	}
	if !s.ExplanationShown() {
		t.Error("explanation not revealed")
	}
	if s.Select(0) || s.Select(3) {
		t.Error("second Select on same question accepted")
	}
	if sel, _ := s.Selected(); sel != 0 || s.Score() != 1 {
		t.Errorf("selection=%d score=%d after repeat", sel, s.Score())
	}
}

func TestSelect_IncorrectRevealsWithoutScoring(t *testing.T) {
	s := started(t)
	s.Select(4)
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
	if !s.ExplanationShown() {
		t.Error("explanation not revealed")
	}
}

func TestSelect_OutOfRange(t *testing.T) {
	s := started(t)
	if s.Select(-1) || s.Select(5) {
		t.Error("out-of-range selection accepted")
	}
	if s.State() != StateInProgress {
		t.Errorf("state = %v", s.State())
	}
}

func TestNext_RequiresAnswer(t *testing.T) {
	s := started(t)
	if s.Next() {
		t.Error("Next accepted before answering")
	}
}

func TestFullRun(t *testing.T) {
	s := started(t)
	finishes := 0
	for i := 0; i < 5; i++ {
		q, _ := s.Current()
		if q.ID != fmt.Sprintf("q%d", i+1) {
			t.Fatalf("question %d = %s", i, q.ID)
		}
		if _, answered := s.Selected(); answered {
			t.Fatalf("question %d starts answered", i)
		}
		// Right on even questions, wrong on odd ones.
		pick := q.CorrectIndex
		if i%2 == 1 {
			pick = (q.CorrectIndex + 1) % 5
		}
		s.Select(pick)
		if s.IsLast() != (i == 4) {
			t.Errorf("IsLast at %d = %v", i, s.IsLast())
		}
		s.Next()
		if s.State() == StateFinished {
			finishes++
		}
	}

	if finishes != 1 {
		t.Errorf("reached finished %d times, want 1", finishes)
	}
	score, total, ok := s.Result()
	if !ok || score != 3 || total != 5 {
		t.Errorf("result = %d/%d ok=%v, want 3/5", score, total, ok)
	}
	if s.Next() || s.Select(0) {
		t.Error("finished session accepted input")
	}
}

func TestNewTopic_ClearsQuestions(t *testing.T) {
	s := started(t)
	if s.NewTopic() {
		t.Error("NewTopic accepted mid-session")
	}
	for i := 0; i < 5; i++ {
		s.Select(0)
		s.Next()
	}
	if !s.NewTopic() {
		t.Fatal("NewTopic rejected after finish")
	}
	if s.State() != StateIdle || s.Len() != 0 || s.Score() != 0 {
		t.Errorf("state=%v len=%d score=%d", s.State(), s.Len(), s.Score())
	}
	if _, ok := s.Current(); ok {
		t.Error("current question survived NewTopic")
	}
}

func TestOptionLetter(t *testing.T) {
	got := ""
	for i := 0; i < 5; i++ {
		got += OptionLetter(i)
	}
	if got != "ABCDE" {
		t.Errorf("letters = %q", got)
	}
}
