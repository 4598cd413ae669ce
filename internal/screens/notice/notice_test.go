package notice

import (
	"strings"
	"testing"
)

func TestAIUnavailable(t *testing.T) {
	n := AIUnavailable("Smart Planner")
	if n.Title() != "Smart Planner" {
		t.Errorf("title = %q", n.Title())
	}
	v := n.View(100, 30)
	for _, want := range []string{"AI features unavailable", "GEMINI_API_KEY", "MASTERMIND_LLM_PROVIDER"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if _, cmd := n.Update(nil); cmd != nil {
		t.Error("notice should not produce commands")
	}
}
