package plan

import (
	"strings"
	"testing"
)

func TestTotalSessions(t *testing.T) {
	p := &StudyPlan{Schedule: []StudyDay{
		{Day: "Day 1", Sessions: []StudySession{{Topic: "a"}, {Topic: "b"}}},
		{Day: "Day 2"},
		{Day: "Day 3", Sessions: []StudySession{{Topic: "c"}}},
	}}
	if got := p.TotalSessions(); got != 3 {
		t.Errorf("TotalSessions() = %d, want 3", got)
	}
}

func TestText(t *testing.T) {
	p := &StudyPlan{
		Title: "Final Push",
		Schedule: []StudyDay{{
			Day:   "Week 1 - Monday",
			Notes: "Warm up",
			Sessions: []StudySession{
				{Topic: "Opioids", Duration: "60 min", Method: "Core Reading", Focus: "Receptor subtypes"},
			},
		}},
	}
	got := p.Text()
	for _, want := range []string{"Final Push", "Week 1 - Monday  (Warm up)", "- Opioids [60 min] Core Reading. Focus: Receptor subtypes"} {
		if !strings.Contains(got, want) {
			t.Errorf("Text() missing %q:\n%s", want, got)
		}
	}
}
