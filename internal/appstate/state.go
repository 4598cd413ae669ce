// Package appstate owns the user's settings, curriculum progress and study
// plan. Every mutation goes through State and is written through to its
// slot in full.
package appstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/mastermind/internal/curriculum"
	"github.com/abhisek/mastermind/internal/logging"
	"github.com/abhisek/mastermind/internal/plan"
	"github.com/abhisek/mastermind/internal/schemacheck"
	"github.com/abhisek/mastermind/internal/settings"
	"github.com/abhisek/mastermind/internal/store"
)

// Options configures Open.
type Options struct {
	// Now supplies the clock for the first-run profile. Defaults to time.Now.
	Now func() time.Time

	// Log receives load warnings. Defaults to a no-op logger.
	Log *logging.Logger

	// Profile overrides applied to the default settings when no settings
	// slot exists yet. Empty values keep the built-in default.
	DefaultName     string
	DefaultExamType settings.ExamType
}

// State is the single in-memory copy of the three persisted documents.
// It is safe for concurrent use; plan generation commits from a command
// goroutine while the UI reads.
type State struct {
	mu    sync.RWMutex
	slots store.SlotRepo
	log   *logging.Logger
	now   func() time.Time

	settings   settings.UserSettings
	curriculum curriculum.Curriculum
	plan       *plan.StudyPlan

	warnings []error
}

// Open loads all three slots. A missing slot yields its default. A corrupt
// slot yields its default plus a *StorageParseError in Warnings. Only a
// failing store is returned as an error.
func Open(ctx context.Context, slots store.SlotRepo, opts Options) (*State, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}

	s := &State{slots: slots, log: opts.Log, now: opts.Now}

	s.settings = settings.Default(opts.Now())
	if opts.DefaultName != "" {
		s.settings.Name = opts.DefaultName
	}
	if opts.DefaultExamType.Valid() {
		s.settings.ExamType = opts.DefaultExamType
	}
	if err := s.load(ctx, store.SlotSettings, settingsSchema, func(raw []byte) error {
		var us settings.UserSettings
		if err := json.Unmarshal(raw, &us); err != nil {
			return err
		}
		if err := us.Validate(); err != nil {
			return err
		}
		s.settings = us
		return nil
	}); err != nil {
		return nil, err
	}

	s.curriculum = curriculum.Default()
	if err := s.load(ctx, store.SlotCurriculum, curriculumSchema, func(raw []byte) error {
		var saved curriculum.Curriculum
		if err := json.Unmarshal(raw, &saved); err != nil {
			return err
		}
		s.curriculum = curriculum.Merge(curriculum.Default(), saved)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.load(ctx, store.SlotPlan, planSchema, func(raw []byte) error {
		var p plan.StudyPlan
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		s.plan = &p
		return nil
	}); err != nil {
		return nil, err
	}

	return s, nil
}

// load reads key and hands it to decode. Decode and schema failures are
// recorded as warnings, not returned.
func (s *State) load(ctx context.Context, key string, schema schemacheck.Schema, decode func([]byte) error) error {
	raw, ok, err := s.slots.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil
	}

	err = schemacheck.Check(schema, []byte(raw))
	if err == nil {
		err = decode([]byte(raw))
	}
	if err != nil {
		perr := &StorageParseError{Key: key, Err: err}
		s.warnings = append(s.warnings, perr)
		s.log.Warn("falling back to default", "slot", key, "error", err)
	}
	return nil
}

// Warnings returns the load problems found by Open.
func (s *State) Warnings() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]error(nil), s.warnings...)
}

// Now returns the state's clock reading.
func (s *State) Now() time.Time {
	return s.now()
}

// Settings returns the current profile.
func (s *State) Settings() settings.UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Curriculum returns a copy of the tracked syllabus.
func (s *State) Curriculum() curriculum.Curriculum {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curriculum.Clone()
}

// Stats returns overall completion.
func (s *State) Stats() curriculum.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return curriculum.ComputeStats(s.curriculum)
}

// Plan returns a copy of the saved plan, if any.
func (s *State) Plan() (*plan.StudyPlan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.plan == nil {
		return nil, false
	}
	cp := *s.plan
	cp.Schedule = append([]plan.StudyDay(nil), s.plan.Schedule...)
	return &cp, true
}

// ToggleTopic flips one item and saves the curriculum. Unknown ids are a
// no-op and return false.
func (s *State) ToggleTopic(ctx context.Context, sectionID, topicID, subtopicID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.curriculum.Clone()
	if !next.Toggle(sectionID, topicID, subtopicID) {
		return false, nil
	}
	if err := s.put(ctx, store.SlotCurriculum, next); err != nil {
		return false, err
	}
	s.curriculum = next
	return true, nil
}

// UpdateSettings replaces the profile wholesale.
func (s *State) UpdateSettings(ctx context.Context, us settings.UserSettings) error {
	if err := us.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.put(ctx, store.SlotSettings, us); err != nil {
		return err
	}
	s.settings = us
	return nil
}

// SetPlan replaces the saved plan.
func (s *State) SetPlan(ctx context.Context, p *plan.StudyPlan) error {
	if p == nil {
		return errors.New("plan is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.put(ctx, store.SlotPlan, p); err != nil {
		return err
	}
	cp := *p
	s.plan = &cp
	return nil
}

// ClearPlan removes the saved plan. Clearing with no plan is a no-op.
func (s *State) ClearPlan(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.slots.Delete(ctx, store.SlotPlan); err != nil {
		return fmt.Errorf("clear plan: %w", err)
	}
	s.plan = nil
	return nil
}

// ResetProgress restores the seed curriculum with nothing completed.
// Settings and plan are kept.
func (s *State) ResetProgress(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := curriculum.Default()
	if err := s.put(ctx, store.SlotCurriculum, seed); err != nil {
		return err
	}
	s.curriculum = seed
	return nil
}

// put must be called with mu held.
func (s *State) put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.slots.Put(ctx, key, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	s.log.Debug("slot saved", "slot", key, "bytes", len(b))
	return nil
}
