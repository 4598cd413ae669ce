package appstate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mastermind/internal/curriculum"
	"github.com/abhisek/mastermind/internal/plan"
	"github.com/abhisek/mastermind/internal/settings"
	"github.com/abhisek/mastermind/internal/store"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func openSlots(t *testing.T) store.SlotRepo {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:appstate_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.SlotRepo()
}

func openState(t *testing.T, slots store.SlotRepo) *State {
	t.Helper()
	s, err := Open(t.Context(), slots, Options{Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	return s
}

func samplePlan(title string) *plan.StudyPlan {
	return &plan.StudyPlan{
		Title: title,
		Schedule: []plan.StudyDay{{
			Day:      "Week 1 - Monday",
			Sessions: []plan.StudySession{{Topic: "Cardiac cycle", Duration: "45 min", Method: "Active Recall", Focus: "Pressure-volume loops"}},
			Notes:    "Light start.",
		}},
		CreatedAt: fixedNow,
	}
}

func TestOpen_FirstRunDefaults(t *testing.T) {
	s := openState(t, openSlots(t))

	us := s.Settings()
	assert.Equal(t, settings.DefaultName, us.Name)
	assert.Equal(t, settings.FRCAPrimary, us.ExamType)
	assert.Equal(t, 90, us.DaysRemaining(fixedNow))

	assert.Equal(t, curriculum.Default(), s.Curriculum())
	assert.Equal(t, 0, s.Stats().Completed)

	_, ok := s.Plan()
	assert.False(t, ok)
	assert.Empty(t, s.Warnings())
}

func TestOpen_ProfileOverrides(t *testing.T) {
	s, err := Open(t.Context(), openSlots(t), Options{
		Now:             func() time.Time { return fixedNow },
		DefaultName:     "Dr Okafor",
		DefaultExamType: settings.EDAICPart1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr Okafor", s.Settings().Name)
	assert.Equal(t, settings.EDAICPart1, s.Settings().ExamType)
}

func TestToggleTopic_PersistsAcrossOpen(t *testing.T) {
	slots := openSlots(t)
	s := openState(t, slots)

	ok, err := s.ToggleTopic(t.Context(), "phys", "p2", "p2a")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.ToggleTopic(t.Context(), "phys", "p1", "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, s.Stats().Completed)

	reopened := openState(t, slots)
	item, found := reopened.Curriculum().Lookup("phys", "p2", "p2a")
	require.True(t, found)
	assert.True(t, item.Completed)
	assert.Equal(t, 2, reopened.Stats().Completed)
}

func TestToggleTopic_UnknownIsNoop(t *testing.T) {
	slots := openSlots(t)
	s := openState(t, slots)

	ok, err := s.ToggleTopic(t.Context(), "phys", "nope", "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, stored, err := slots.Get(t.Context(), store.SlotCurriculum)
	require.NoError(t, err)
	assert.False(t, stored, "no-op toggle should not write the slot")
}

func TestCurriculum_ReturnsCopy(t *testing.T) {
	s := openState(t, openSlots(t))
	c := s.Curriculum()
	c.Toggle("phys", "p1", "")
	assert.Equal(t, 0, s.Stats().Completed)
}

func TestUpdateSettings(t *testing.T) {
	slots := openSlots(t)
	s := openState(t, slots)

	date, err := settings.ParseDate("2026-09-14")
	require.NoError(t, err)
	next := settings.UserSettings{Name: "Dr Patel", ExamType: settings.FRCAFinal, ExamDate: date}
	require.NoError(t, s.UpdateSettings(t.Context(), next))
	assert.Equal(t, next, s.Settings())

	reopened := openState(t, slots)
	assert.Equal(t, "Dr Patel", reopened.Settings().Name)
	assert.Equal(t, settings.FRCAFinal, reopened.Settings().ExamType)
	assert.Equal(t, "2026-09-14", reopened.Settings().ExamDate.String())
}

func TestUpdateSettings_RejectsInvalid(t *testing.T) {
	s := openState(t, openSlots(t))
	before := s.Settings()

	err := s.UpdateSettings(t.Context(), settings.UserSettings{Name: " ", ExamType: "BOARDS"})
	require.Error(t, err)
	assert.Equal(t, before, s.Settings())
}

func TestPlan_SetReplaceClear(t *testing.T) {
	slots := openSlots(t)
	s := openState(t, slots)

	require.NoError(t, s.SetPlan(t.Context(), samplePlan("First")))
	require.NoError(t, s.SetPlan(t.Context(), samplePlan("Second")))

	p, ok := openState(t, slots).Plan()
	require.True(t, ok)
	assert.Equal(t, "Second", p.Title)
	assert.Equal(t, 1, p.TotalSessions())
	assert.True(t, p.CreatedAt.Equal(fixedNow))

	require.NoError(t, s.ClearPlan(t.Context()))
	_, ok = s.Plan()
	assert.False(t, ok)
	_, ok = openState(t, slots).Plan()
	assert.False(t, ok, "cleared plan must not come back on reload")

	require.NoError(t, s.ClearPlan(t.Context()), "clearing twice is a no-op")
}

func TestSetPlan_Nil(t *testing.T) {
	s := openState(t, openSlots(t))
	require.NoError(t, s.SetPlan(t.Context(), samplePlan("Keep")))
	require.Error(t, s.SetPlan(t.Context(), nil))

	p, ok := s.Plan()
	require.True(t, ok)
	assert.Equal(t, "Keep", p.Title)
}

func TestResetProgress_KeepsSettingsAndPlan(t *testing.T) {
	s := openState(t, openSlots(t))
	_, err := s.ToggleTopic(t.Context(), "pharm", "ph1", "")
	require.NoError(t, err)
	require.NoError(t, s.SetPlan(t.Context(), samplePlan("Plan")))

	require.NoError(t, s.ResetProgress(t.Context()))
	assert.Equal(t, 0, s.Stats().Completed)
	_, ok := s.Plan()
	assert.True(t, ok)
}

func TestOpen_CorruptSlotsFallBack(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"settings not json", store.SlotSettings, "{oops"},
		{"settings wrong shape", store.SlotSettings, `{"name": 7, "examType": "FRCA_PRIMARY", "examDate": "2026-05-01"}`},
		{"settings unknown exam", store.SlotSettings, `{"name": "A", "examType": "USMLE", "examDate": "2026-05-01"}`},
		{"curriculum not array", store.SlotCurriculum, `{"sections": []}`},
		{"curriculum bad item", store.SlotCurriculum, `[{"id": "phys", "topics": [{"id": "p1", "completed": "yes"}]}]`},
		{"plan truncated", store.SlotPlan, `{"title": "Half`},
		{"plan missing schedule", store.SlotPlan, `{"title": "No days"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := openSlots(t)
			require.NoError(t, slots.Put(context.Background(), tt.key, tt.value))

			s := openState(t, slots)
			warnings := s.Warnings()
			require.Len(t, warnings, 1)

			var perr *StorageParseError
			require.True(t, errors.As(warnings[0], &perr))
			assert.Equal(t, tt.key, perr.Key)

			assert.Equal(t, settings.FRCAPrimary, s.Settings().ExamType)
			assert.Equal(t, 0, s.Stats().Completed)
			_, ok := s.Plan()
			assert.False(t, ok)
		})
	}
}

func TestOpen_MergesSavedProgressOntoSeed(t *testing.T) {
	slots := openSlots(t)
	saved := `[
		{"id": "phys", "title": "Old title", "topics": [
			{"id": "p1", "title": "x", "completed": true},
			{"id": "retired", "title": "Gone", "completed": true}
		]}
	]`
	require.NoError(t, slots.Put(context.Background(), store.SlotCurriculum, saved))

	s := openState(t, slots)
	assert.Empty(t, s.Warnings())

	c := s.Curriculum()
	assert.Len(t, c, len(curriculum.Default()), "sections come from the seed")
	item, ok := c.Lookup("phys", "p1", "")
	require.True(t, ok)
	assert.True(t, item.Completed)
	_, ok = c.Lookup("phys", "retired", "")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Stats().Completed)
}

type failingSlots struct{ err error }

func (f failingSlots) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingSlots) Put(context.Context, string, string) error         { return f.err }
func (f failingSlots) Delete(context.Context, string) error              { return f.err }

func TestOpen_StoreFailure(t *testing.T) {
	_, err := Open(t.Context(), failingSlots{err: errors.New("disk gone")}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	slots := &flakySlots{SlotRepo: openSlots(t)}
	s := openState(t, slots)
	require.NoError(t, s.SetPlan(t.Context(), samplePlan("Before")))

	slots.fail = true
	require.Error(t, s.SetPlan(t.Context(), samplePlan("After")))
	_, err := s.ToggleTopic(t.Context(), "phys", "p1", "")
	require.Error(t, err)

	p, _ := s.Plan()
	assert.Equal(t, "Before", p.Title)
	assert.Equal(t, 0, s.Stats().Completed)
}

type flakySlots struct {
	store.SlotRepo
	fail bool
}

func (f *flakySlots) Put(ctx context.Context, key, value string) error {
	if f.fail {
		return errors.New("write failed")
	}
	return f.SlotRepo.Put(ctx, key, value)
}
