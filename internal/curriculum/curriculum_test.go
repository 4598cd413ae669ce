package curriculum

import (
	"encoding/json"
	"strings"
	"testing"
)

func sample() Curriculum {
	return Curriculum{
		{ID: "a", Title: "Alpha", Topics: []Item{
			{ID: "a1", Title: "A one", Subtopics: []Item{
				{ID: "a1x", Title: "A one x"},
				{ID: "a1y", Title: "A one y"},
				{ID: "a1z", Title: "A one z"},
			}},
			{ID: "a2", Title: "A two"},
		}},
		{ID: "b", Title: "Beta", Topics: []Item{
			{ID: "b1", Title: "B one"},
		}},
		{ID: "e", Title: "Empty"},
	}
}

func TestDefault_Shape(t *testing.T) {
	c := Default()
	if len(c) != 5 {
		t.Fatalf("got %d sections, want 5", len(c))
	}
	wantTopics := map[string]int{"phys": 7, "pharm": 7, "physics": 7, "clin": 8, "icm": 3}
	for _, s := range c {
		if got := len(s.Topics); got != wantTopics[s.ID] {
			t.Errorf("section %q: got %d topics, want %d", s.ID, got, wantTopics[s.ID])
		}
	}
	st := ComputeStats(c)
	if st.Total != 55 || st.Completed != 0 {
		t.Errorf("stats = %+v, want 55 total, 0 completed", st)
	}
}

func TestDefault_ReturnsCopy(t *testing.T) {
	a := Default()
	a.Toggle("phys", "p2", "p2a")
	b := Default()
	if it, _ := b.Lookup("phys", "p2", "p2a"); it.Completed {
		t.Error("mutating one Default() leaked into the next")
	}
}

func TestToggle_Involution(t *testing.T) {
	tests := []struct {
		name                 string
		section, topic, sub string
	}{
		{"topic", "a", "a2", ""},
		{"topic with subtopics", "a", "a1", ""},
		{"subtopic", "a", "a1", "a1y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sample()
			before, _ := c.Lookup(tt.section, tt.topic, tt.sub)
			if !c.Toggle(tt.section, tt.topic, tt.sub) {
				t.Fatal("first toggle did not resolve")
			}
			mid, _ := c.Lookup(tt.section, tt.topic, tt.sub)
			if mid.Completed == before.Completed {
				t.Error("toggle did not flip the flag")
			}
			c.Toggle(tt.section, tt.topic, tt.sub)
			after, _ := c.Lookup(tt.section, tt.topic, tt.sub)
			if after.Completed != before.Completed {
				t.Error("toggling twice did not restore the flag")
			}
		})
	}
}

func TestToggle_NoCascade(t *testing.T) {
	c := sample()
	c.Toggle("a", "a1", "a1x")
	if parent, _ := c.Lookup("a", "a1", ""); parent.Completed {
		t.Error("subtopic toggle changed parent topic")
	}

	c = sample()
	c.Toggle("a", "a1", "")
	for _, sub := range []string{"a1x", "a1y", "a1z"} {
		if it, _ := c.Lookup("a", "a1", sub); it.Completed {
			t.Errorf("topic toggle changed subtopic %q", sub)
		}
	}
}

func TestToggle_UnknownIDs(t *testing.T) {
	tests := []struct {
		section, topic, sub string
	}{
		{"zz", "a1", ""},
		{"a", "zz", ""},
		{"a", "a1", "zz"},
		{"b", "a1", ""},
		{"a", "a2", "a1x"},
	}
	for _, tt := range tests {
		c := sample()
		if c.Toggle(tt.section, tt.topic, tt.sub) {
			t.Errorf("Toggle(%q,%q,%q) resolved, want no-op", tt.section, tt.topic, tt.sub)
		}
		if st := ComputeStats(c); st.Completed != 0 {
			t.Errorf("Toggle(%q,%q,%q) mutated curriculum", tt.section, tt.topic, tt.sub)
		}
	}
}

func TestComputeStats_DoubleCounts(t *testing.T) {
	c := sample()
	c.Toggle("a", "a1", "")
	c.Toggle("a", "a1", "a1x")
	c.Toggle("b", "b1", "")

	st := ComputeStats(c)
	if st.Total != 6 {
		t.Errorf("total = %d, want 6", st.Total)
	}
	if st.Completed != 3 {
		t.Errorf("completed = %d, want 3", st.Completed)
	}
	if st.Percent() != 50 {
		t.Errorf("percent = %d, want 50", st.Percent())
	}
}

func TestComputeStats_NilAndEmptySubtopics(t *testing.T) {
	withNil := Curriculum{{ID: "s", Title: "S", Topics: []Item{{ID: "t", Title: "T"}}}}
	withEmpty := Curriculum{{ID: "s", Title: "S", Topics: []Item{{ID: "t", Title: "T", Subtopics: []Item{}}}}}
	if ComputeStats(withNil) != ComputeStats(withEmpty) {
		t.Error("nil and empty subtopics counted differently")
	}
}

func TestDomainBreakdown(t *testing.T) {
	c := sample()
	c.Toggle("a", "a1", "a1x") // subtopics do not count here
	c.Toggle("a", "a2", "")
	c.Toggle("b", "b1", "")

	got := DomainBreakdown(c)
	want := []Domain{
		{Name: "Alpha", Completed: 1, Total: 2, Percentage: 50},
		{Name: "Beta", Completed: 1, Total: 1, Percentage: 100},
		{Name: "Empty", Completed: 0, Total: 0, Percentage: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d domains, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("domain %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPercentRounding(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{1, 8, 13},
		{1, 3, 33},
		{2, 3, 67},
		{1, 200, 1},
		{7, 7, 100},
	}
	for _, tt := range tests {
		if got := percent(tt.completed, tt.total); got != tt.want {
			t.Errorf("percent(%d,%d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestWeakestDomain_FirstOfTies(t *testing.T) {
	b := []Domain{
		{Name: "A", Percentage: 40},
		{Name: "B", Percentage: 10},
		{Name: "C", Percentage: 10},
		{Name: "D", Percentage: 90},
	}
	got, ok := WeakestDomain(b)
	if !ok || got.Name != "B" {
		t.Errorf("weakest = %+v, want B", got)
	}

	if _, ok := WeakestDomain(nil); ok {
		t.Error("expected ok=false for empty breakdown")
	}
}

func TestIncompleteTopics(t *testing.T) {
	c := sample()
	c.Toggle("a", "a1", "a1y")
	c.Toggle("b", "b1", "")

	got := IncompleteTopics(c)
	want := []string{"Alpha: A one", "A one x", "A one z", "Alpha: A two"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %q, want %q", got, want)
	}

	c.Toggle("a", "a1", "")
	got = IncompleteTopics(c)
	if strings.Join(got, "|") != "Alpha: A two" {
		t.Errorf("completed topic still lists subtopics: %q", got)
	}
}

func TestMerge(t *testing.T) {
	saved := sample()
	saved.Toggle("a", "a1", "a1z")
	saved.Toggle("b", "b1", "")
	saved[1].Topics = append(saved[1].Topics, Item{ID: "gone", Title: "Removed", Completed: true})

	base := sample()
	base[0].Topics = append(base[0].Topics, Item{ID: "a3", Title: "New"})

	got := Merge(base, saved)
	if it, ok := got.Lookup("a", "a1", "a1z"); !ok || !it.Completed {
		t.Error("completion of a1z not carried over")
	}
	if it, ok := got.Lookup("b", "b1", ""); !ok || !it.Completed {
		t.Error("completion of b1 not carried over")
	}
	if _, ok := got.Lookup("a", "a3", ""); !ok {
		t.Error("new base topic missing after merge")
	}
	if _, ok := got.Lookup("b", "gone", ""); ok {
		t.Error("unknown saved topic survived merge")
	}
	if st := ComputeStats(base); st.Completed != 0 {
		t.Error("merge modified base")
	}
}

func TestJSONShape(t *testing.T) {
	c := Curriculum{{ID: "s", Title: "S", Topics: []Item{{ID: "t", Title: "T"}}}}
	b, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"id":"s","title":"S","topics":[{"id":"t","title":"T","completed":false}]}]`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       Curriculum
		wantErr string
	}{
		{"ok", sample(), ""},
		{"duplicate section", Curriculum{{ID: "a", Title: "A"}, {ID: "a", Title: "B"}}, "duplicate section"},
		{"duplicate topic", Curriculum{{ID: "a", Title: "A", Topics: []Item{{ID: "t", Title: "T"}, {ID: "t", Title: "U"}}}}, "duplicate ID"},
		{"missing title", Curriculum{{ID: "a", Title: "A", Topics: []Item{{ID: "t"}}}}, "required"},
		{"too deep", Curriculum{{ID: "a", Title: "A", Topics: []Item{{ID: "t", Title: "T", Subtopics: []Item{
			{ID: "u", Title: "U", Subtopics: []Item{{ID: "v", Title: "V"}}},
		}}}}}, "own subtopics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.c)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("- id: a\n  title: A\n- id: a\n  title: B\n")); err == nil {
		t.Error("expected duplicate section error")
	}
	if _, err := Parse([]byte("{not: [yaml")); err == nil {
		t.Error("expected YAML error")
	}
}
