// Package ai turns the candidate's state into prompts for the generative
// model and parses what comes back into plans and quizzes.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mastermind/internal/llm"
	"github.com/abhisek/mastermind/internal/plan"
	"github.com/abhisek/mastermind/internal/quiz"
	"github.com/abhisek/mastermind/internal/settings"
)

// LLM purposes, recorded with every request.
const (
	PurposeStudyPlan = llm.PurposeStudyPlan
	PurposeQuiz      = llm.PurposeQuiz
)

// PlanInput is everything the plan prompt is built from.
type PlanInput struct {
	Weeks            int
	WeaknessNotes    string
	HoursPerDay      int
	ExamType         settings.ExamType
	IncompleteTopics []string
}

// Service issues the two generation requests. It never mutates app state;
// callers decide what to do with the result. There is no retry.
type Service struct {
	provider llm.Provider
	cfg      Config
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now for stamping plans.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a generation service.
func NewService(provider llm.Provider, cfg Config, opts ...Option) *Service {
	s := &Service{provider: provider, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the generation settings in use.
func (s *Service) Config() Config {
	return s.cfg
}

type planOutput struct {
	Title    string          `json:"title"`
	Schedule []plan.StudyDay `json:"schedule"`
}

// GenerateStudyPlan requests a revision timetable. On success CreatedAt is
// stamped from the local clock. Any failure is a *GenerationError.
func (s *Service) GenerateStudyPlan(ctx context.Context, in PlanInput) (*plan.StudyPlan, error) {
	ctx = llm.WithPurpose(ctx, PurposeStudyPlan)

	req := llm.Request{
		System: planSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPlanUserMessage(in, s.cfg.MaxPriorityTopics)},
		},
		Schema:         StudyPlanSchema,
		MaxTokens:      s.cfg.PlanMaxTokens,
		Temperature:    s.cfg.Temperature,
		ThinkingBudget: s.cfg.PlanThinkingBudget,
	}

	content, err := s.generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Op: PurposeStudyPlan, Err: err}
	}

	var out planOutput
	if err := json.Unmarshal(content, &out); err != nil {
		return nil, &GenerationError{Op: PurposeStudyPlan, Err: fmt.Errorf("parse response: %w", err)}
	}

	return &plan.StudyPlan{
		Title:     out.Title,
		Schedule:  out.Schedule,
		CreatedAt: s.now().UTC(),
	}, nil
}

// GenerateQuiz requests a set of SBA questions on topic. Questions without
// a usable id get a fresh one. Any failure is a *GenerationError.
func (s *Service) GenerateQuiz(ctx context.Context, topic string, exam settings.ExamType) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, PurposeQuiz)

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, &GenerationError{Op: PurposeQuiz, Err: errors.New("topic is required")}
	}

	req := llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizUserMessage(topic, exam, s.cfg.QuizLength, s.cfg.OptionsPerQuestion)},
		},
		Schema:      QuizSchema,
		MaxTokens:   s.cfg.QuizMaxTokens,
		Temperature: s.cfg.Temperature,
	}

	content, err := s.generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Op: PurposeQuiz, Err: err}
	}

	var questions []quiz.Question
	if err := json.Unmarshal(content, &questions); err != nil {
		return nil, &GenerationError{Op: PurposeQuiz, Err: fmt.Errorf("parse response: %w", err)}
	}
	if len(questions) == 0 {
		return nil, &GenerationError{Op: PurposeQuiz, Err: quiz.ErrNoQuestions}
	}

	assignIDs(questions)
	return questions, nil
}

func (s *Service) generate(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	content := bytes.TrimSpace(resp.Content)
	if len(content) == 0 || bytes.Equal(content, []byte("null")) {
		return nil, errors.New("empty response")
	}
	return content, nil
}

// assignIDs fills blank or repeated ids so answers can be keyed per question.
func assignIDs(questions []quiz.Question) {
	seen := make(map[string]bool, len(questions))
	for i := range questions {
		id := strings.TrimSpace(questions[i].ID)
		if id == "" || seen[id] {
			id = uuid.NewString()
		}
		seen[id] = true
		questions[i].ID = id
	}
}
