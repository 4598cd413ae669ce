package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSlotGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.SlotRepo().Get(context.Background(), SlotPlan)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expected missing slot")
	}
}

func TestSlotPutReplaces(t *testing.T) {
	s := openTestStore(t)
	repo := s.SlotRepo()
	ctx := context.Background()

	if err := repo.Put(ctx, SlotSettings, `{"name":"A"}`); err != nil {
		t.Fatalf("put 1: %v", err)
	}
	if err := repo.Put(ctx, SlotSettings, `{"name":"B"}`); err != nil {
		t.Fatalf("put 2: %v", err)
	}

	v, ok, err := repo.Get(ctx, SlotSettings)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v != `{"name":"B"}` {
		t.Errorf("value = %s, want second write", v)
	}

	count, err := s.Client().Slot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("slot rows = %d, want 1", count)
	}
}

func TestSlotDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.SlotRepo()
	ctx := context.Background()

	if err := repo.Delete(ctx, SlotPlan); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	if err := repo.Put(ctx, SlotPlan, `{}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Delete(ctx, SlotPlan); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, SlotPlan); ok {
		t.Error("slot still present after delete")
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	s := openTestStore(t)
	repo := s.SlotRepo()
	ctx := context.Background()

	for _, k := range []string{SlotSettings, SlotCurriculum, SlotPlan} {
		if err := repo.Put(ctx, k, `"`+k+`"`); err != nil {
			t.Fatalf("put %s: %v", k, err)
		}
	}
	if err := repo.Delete(ctx, SlotPlan); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, k := range []string{SlotSettings, SlotCurriculum} {
		v, ok, err := repo.Get(ctx, k)
		if err != nil || !ok || v != `"`+k+`"` {
			t.Errorf("slot %s = %q ok=%v err=%v", k, v, ok, err)
		}
	}
}

func TestLLMEventsAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "study-plan", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true},
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "quiz", InputTokens: 50, OutputTokens: 200, LatencyMs: 300, Success: true},
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "quiz", InputTokens: 50, OutputTokens: 0, LatencyMs: 100, ErrorMessage: "boom"},
	}
	for i, d := range data {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Errorf("expected newest first, got %d then %d", events[0].Sequence, events[1].Sequence)
	}
	if events[0].ErrorMessage != "boom" {
		t.Errorf("newest error = %q, want boom", events[0].ErrorMessage)
	}

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	if err != nil || got == nil {
		t.Fatalf("get: %v %v", got, err)
	}
	if got.Purpose != "quiz" {
		t.Errorf("purpose = %q, want quiz", got.Purpose)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, d := range []LLMRequestEventData{
		{Model: "m1", Purpose: "quiz", InputTokens: 10, OutputTokens: 10, LatencyMs: 100},
		{Model: "m1", Purpose: "quiz", InputTokens: 10, OutputTokens: 10, LatencyMs: 300},
		{Model: "m2", Purpose: "study-plan", InputTokens: 100, OutputTokens: 100, LatencyMs: 50},
	} {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("len = %d, want 2", len(byPurpose))
	}
	if byPurpose[0].Purpose != "study-plan" {
		t.Errorf("largest bucket = %q, want study-plan", byPurpose[0].Purpose)
	}
	if q := byPurpose[1]; q.Calls != 2 || q.AvgLatencyMs != 200 {
		t.Errorf("quiz usage = %+v", q)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[1].Model != "m1" || byModel[1].InputTokens != 20 {
		t.Errorf("by model = %+v", byModel)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a", "b", "mastermind.db")
	if err := EnsureDir(p); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	if fi, err := os.Stat(filepath.Dir(p)); err != nil || !fi.IsDir() {
		t.Errorf("parent dir missing: %v", err)
	}
}

func TestDefaultDBPathEnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom", "x.db")
	t.Setenv("MASTERMIND_DB", p)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != p {
		t.Errorf("path = %q, want %q", got, p)
	}
}
