package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/mastermind/internal/llm"
	"github.com/abhisek/mastermind/internal/settings"
)

func validPlanJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "4-Week Primary FRCA Sprint",
		"schedule": [
			{
				"day": "Week 1 - Monday",
				"notes": "Start with respiratory mechanics.",
				"sessions": [
					{"topic": "Compliance", "duration": "60 min", "method": "Core Reading", "focus": "Pressure-volume curves"},
					{"topic": "SBA set", "duration": "30 min", "method": "SBA Practice", "focus": "Gas laws"}
				]
			}
		]
	}`)
}

func validQuizJSON() json.RawMessage {
	return json.RawMessage(`[
		{"id": "q1", "question": "Which agent has the lowest blood:gas partition coefficient?", "options": ["Desflurane", "Sevoflurane", "Isoflurane", "Nitrous oxide", "Halothane"], "correctIndex": 0, "explanation": "Desflurane is 0.42.", "domain": "Pharmacology"},
		{"id": "q2", "question": "Normal FRC in a 70 kg adult?", "options": ["1 L", "2.5 L", "4 L", "5 L", "6 L"], "correctIndex": 1, "explanation": "About 30 ml/kg.", "domain": "Physiology"}
	]`)
}

func planInput(topics int) PlanInput {
	in := PlanInput{
		Weeks:       4,
		HoursPerDay: 3,
		ExamType:    settings.FRCAPrimary,
	}
	for i := 0; i < topics; i++ {
		in.IncompleteTopics = append(in.IncompleteTopics, fmt.Sprintf("Topic %02d", i+1))
	}
	return in
}

func TestGenerateStudyPlan_StampsCreatedAt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPlanJSON()})
	fixed := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
	svc := NewService(mock, DefaultConfig(), WithClock(func() time.Time { return fixed }))

	p, err := svc.GenerateStudyPlan(t.Context(), planInput(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "4-Week Primary FRCA Sprint" {
		t.Errorf("title = %q", p.Title)
	}
	if len(p.Schedule) != 1 || p.TotalSessions() != 2 {
		t.Errorf("schedule = %+v", p.Schedule)
	}
	if !p.CreatedAt.Equal(fixed) {
		t.Errorf("createdAt = %v, want %v", p.CreatedAt, fixed)
	}

	req := mock.Calls[0]
	if req.Schema != StudyPlanSchema {
		t.Error("plan request did not carry the plan schema")
	}
	if req.Purpose != llm.PurposeStudyPlan {
		t.Errorf("purpose = %q, want study-plan", req.Purpose)
	}
	if req.ThinkingBudget != 1024 {
		t.Errorf("thinking budget = %d, want 1024", req.ThinkingBudget)
	}
}

func TestGenerateStudyPlan_PromptContents(t *testing.T) {
	tests := []struct {
		name     string
		in       PlanInput
		contains []string
		absent   []string
	}{
		{
			name: "frca with weaknesses",
			in: PlanInput{Weeks: 6, HoursPerDay: 2, ExamType: settings.FRCAFinal, WeaknessNotes: "acid-base",
				IncompleteTopics: []string{"Pharmacology: Basic Principles", "Isomerism & Chemistry"}},
			contains: []string{"6-week", "Final FRCA", "Daily Study Time: 2 hours", "Weaknesses: acid-base.",
				"Pharmacology: Basic Principles, Isomerism & Chemistry.", "clinical application of basic sciences"},
			absent: []string{"and others", "EDAIC"},
		},
		{
			name:     "edaic with empty weaknesses",
			in:       PlanInput{Weeks: 4, HoursPerDay: 5, ExamType: settings.EDAICPart1, WeaknessNotes: "   "},
			contains: []string{"EDAIC Part 1", "Weaknesses: General revision.", "Basic Sciences heavily", "every topic is marked complete"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: validPlanJSON()})
			svc := NewService(mock, DefaultConfig())
			if _, err := svc.GenerateStudyPlan(t.Context(), tt.in); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			msg := mock.Calls[0].Messages[0].Content
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("prompt missing %q:\n%s", want, msg)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(msg, bad) {
					t.Errorf("prompt unexpectedly contains %q", bad)
				}
			}
		})
	}
}

func TestGenerateStudyPlan_TruncatesTopics(t *testing.T) {
	tests := []struct {
		name       string
		cap        int
		topics     int
		wantLast   string
		wantAbsent string
		wantOthers bool
	}{
		{"default cap", 20, 25, "Topic 20", "Topic 21", true},
		{"exactly at cap", 20, 20, "Topic 20", "", false},
		{"custom cap", 3, 10, "Topic 03", "Topic 04", true},
		{"no cap", 0, 30, "Topic 30", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: validPlanJSON()})
			cfg := DefaultConfig()
			cfg.MaxPriorityTopics = tt.cap
			svc := NewService(mock, cfg)

			if _, err := svc.GenerateStudyPlan(t.Context(), planInput(tt.topics)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			msg := mock.Calls[0].Messages[0].Content
			if !strings.Contains(msg, tt.wantLast) {
				t.Errorf("prompt missing %q", tt.wantLast)
			}
			if tt.wantAbsent != "" && strings.Contains(msg, tt.wantAbsent) {
				t.Errorf("prompt contains %q beyond the cap", tt.wantAbsent)
			}
			if got := strings.Contains(msg, "(and others)"); got != tt.wantOthers {
				t.Errorf("and-others marker = %v, want %v", got, tt.wantOthers)
			}
		})
	}
}

func TestGenerateStudyPlan_Failures(t *testing.T) {
	providerErr := &llm.ErrProviderUnavailable{}
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"malformed json", llm.MockResponse{Content: json.RawMessage(`{"title": "x", "schedule": [`)}},
		{"empty text", llm.MockResponse{Content: json.RawMessage(``)}},
		{"null", llm.MockResponse{Content: json.RawMessage(`null`)}},
		{"wrong shape", llm.MockResponse{Content: json.RawMessage(`[1,2,3]`)}},
		{"provider error", llm.MockResponse{Err: providerErr}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.resp)
			svc := NewService(mock, DefaultConfig())

			p, err := svc.GenerateStudyPlan(t.Context(), planInput(1))
			if p != nil {
				t.Errorf("partial plan returned: %+v", p)
			}
			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("expected GenerationError, got %T (%v)", err, err)
			}
			if genErr.Op != PurposeStudyPlan {
				t.Errorf("op = %q", genErr.Op)
			}
			if mock.CallCount() != 1 {
				t.Errorf("calls = %d, want exactly 1 (no retry)", mock.CallCount())
			}
		})
	}
}

func TestGenerateQuiz(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON()})
	svc := NewService(mock, DefaultConfig())

	qs, err := svc.GenerateQuiz(t.Context(), "Inhalational agents", settings.EDAICPart1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
	if qs[0].ID != "q1" || qs[0].CorrectIndex != 0 || len(qs[0].Options) != 5 {
		t.Errorf("question 1 = %+v", qs[0])
	}

	req := mock.Calls[0]
	if req.Schema != QuizSchema {
		t.Error("quiz request did not carry the quiz schema")
	}
	if req.Purpose != llm.PurposeQuiz {
		t.Errorf("purpose = %q, want quiz", req.Purpose)
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Generate 5 high-yield", "EDAIC Part 1", "Topic: Inhalational agents.", "EDAIC style", "5 options per question (A-E)"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestGenerateQuiz_FRCAStyle(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON()})
	svc := NewService(mock, DefaultConfig())
	if _, err := svc.GenerateQuiz(t.Context(), "Obstetrics", settings.FRCAPrimary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg := mock.Calls[0].Messages[0].Content; !strings.Contains(msg, "Clinical vignettes") {
		t.Errorf("FRCA prompt missing vignette style:\n%s", msg)
	}
}

func TestGenerateQuiz_AssignsMissingIDs(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[
		{"id": "", "question": "a", "options": ["x"], "correctIndex": 0, "explanation": "", "domain": ""},
		{"id": "dup", "question": "b", "options": ["x"], "correctIndex": 0, "explanation": "", "domain": ""},
		{"id": "dup", "question": "c", "options": ["x"], "correctIndex": 0, "explanation": "", "domain": ""}
	]`)})
	svc := NewService(mock, DefaultConfig())

	qs, err := svc.GenerateQuiz(t.Context(), "anything", settings.FRCAPrimary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := map[string]bool{}
	for _, q := range qs {
		if q.ID == "" || seen[q.ID] {
			t.Errorf("id %q blank or repeated", q.ID)
		}
		seen[q.ID] = true
	}
	if qs[1].ID != "dup" {
		t.Errorf("first occurrence renamed: %q", qs[1].ID)
	}
}

func TestGenerateQuiz_Failures(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		resp  *llm.MockResponse
	}{
		{"blank topic", "  ", nil},
		{"malformed", "Sepsis", &llm.MockResponse{Content: json.RawMessage(`[{"id":`)}},
		{"empty", "Sepsis", &llm.MockResponse{Content: json.RawMessage(` `)}},
		{"empty array", "Sepsis", &llm.MockResponse{Content: json.RawMessage(`[]`)}},
		{"object instead of array", "Sepsis", &llm.MockResponse{Content: json.RawMessage(`{"id":"q1"}`)}},
		{"rate limited", "Sepsis", &llm.MockResponse{Err: &llm.ErrRateLimit{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider()
			if tt.resp != nil {
				mock.AddResponse(*tt.resp)
			}
			svc := NewService(mock, DefaultConfig())

			qs, err := svc.GenerateQuiz(t.Context(), tt.topic, settings.FRCAPrimary)
			if qs != nil {
				t.Errorf("partial quiz returned: %+v", qs)
			}
			var genErr *GenerationError
			if !errors.As(err, &genErr) || genErr.Op != PurposeQuiz {
				t.Fatalf("expected quiz GenerationError, got %T (%v)", err, err)
			}
		})
	}
}

func TestGenerationError_Unwrap(t *testing.T) {
	rl := &llm.ErrRateLimit{}
	err := error(&GenerationError{Op: PurposeQuiz, Err: rl})
	var target *llm.ErrRateLimit
	if !errors.As(err, &target) {
		t.Fatal("GenerationError does not unwrap to the provider error")
	}
	if !strings.Contains(err.Error(), "quiz generation failed") {
		t.Errorf("message = %q", err.Error())
	}
}
